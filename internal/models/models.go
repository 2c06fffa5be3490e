package models

// ContactID is the fixed primary key of the single contact row.
const ContactID = 1

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

type Product struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null"                 json:"name"`
	Price int64  `gorm:"not null"                 json:"price"`
	Stock int64  `gorm:"not null"                 json:"stock"`
	Image string `gorm:"not null;default:''"      json:"image"`
}

// Admin holds the one administrator account. The password is stored as entered.
type Admin struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"not null"                 json:"username"`
	Password string `gorm:"not null"                 json:"-"`
}

func (Admin) TableName() string { return "admin" }

type Contact struct {
	ID        uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Phone1    string `json:"phone1"`
	Phone2    string `json:"phone2"`
	Instagram string `json:"instagram"`
	Email     string `json:"email"`
}

func (Contact) TableName() string { return "contact" }

func DefaultAdmin() Admin {
	return Admin{Username: DefaultAdminUsername, Password: DefaultAdminPassword}
}

func DefaultContact() Contact {
	return Contact{
		ID:        ContactID,
		Phone1:    "9876543210",
		Phone2:    "9123456780",
		Instagram: "https://instagram.com",
		Email:     "example@gmail.com",
	}
}
