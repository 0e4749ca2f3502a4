package models

type Category struct {
	CategoryID uint   `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	Name       string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Category) TableName() string { return "category" }
