package models

// User is an identity record. The first registered account is flagged as the
// site admin; there is no other role.
type User struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // bcrypt, never the plaintext
	Name         string `gorm:"not null" json:"name"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
}

// BlogPost is a content entry authored by the admin. Date is a human-readable
// display string stamped at creation and never touched on edit.
type BlogPost struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID int    `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"-"`
	Title    string `gorm:"unique;not null" json:"title"`
	Subtitle string `gorm:"not null" json:"subtitle"`
	Date     string `gorm:"not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImgURL   string `gorm:"not null" json:"img_url"`
}

// Comment references its post and commenter by id only; reverse lookups are
// queries, not stored back-references.
type Comment struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID      int    `gorm:"not null;index" json:"post_id"`
	CommenterID int    `gorm:"not null;index" json:"commenter_id"`
	Commenter   User   `gorm:"foreignKey:CommenterID" json:"-"`
	Text        string `gorm:"not null" json:"text"`
	Date        string `json:"date"`
}
