package models

type Item struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:50;not null"         json:"name"`
	Description string  `gorm:"size:80;not null"         json:"description"`
	Image       string  `gorm:"size:500;not null"        json:"image"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Quantity    int     `gorm:"not null;default:0"       json:"quantity"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null"        json:"-"`
	Name         string `gorm:"size:100;not null"        json:"name"`
	Role         string `gorm:"not null"                 json:"role"`
}

type CartItem struct {
	ID       uint `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID   uint `gorm:"index;not null"              json:"user_id"`
	ItemID   uint `gorm:"not null"                    json:"item_id"`
	Quantity uint `gorm:"default:1;check:quantity>0"  json:"quantity"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	JTI       string `gorm:"index"           json:"jti"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
