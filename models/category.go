package models

// CategoryFields holds the client-writable columns of a category.
// The gorm and validate tags are the single declaration of its constraints.
type CategoryFields struct {
	Name string `gorm:"column:nombre;size:50;not null" json:"nombre" validate:"required,min=1,max=50"`
}

// Category represents a product category.
// Its ID is assigned by the application, never by the database.
type Category struct {
	ID uint `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CategoryFields
}

func (c *Category) TableName() string {
	return "categoria"
}
