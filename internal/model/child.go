package model

// Child is a learner profile owned by a parent account. Children log in
// with a username; the internal email is derived from it so the profile
// can hold its own credential without a real mailbox.
// swagger:model Child
type Child struct {
	UUIDBase
	Name     string `gorm:"size:100;not null" json:"name"`
	Age      int    `gorm:"not null" json:"age"`
	Grade    string `gorm:"size:20;not null" json:"grade"`
	Username string `gorm:"size:100;unique;not null" json:"username"`
	Password string `gorm:"size:100;not null" json:"-"`
	Avatar   string `gorm:"size:255;default:'person-circle-outline'" json:"avatar"`
	ParentID uint   `gorm:"index;not null" json:"parentId"`
}

func (Child) TableName() string {
	return "children"
}
