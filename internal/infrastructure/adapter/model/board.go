package model

// Group is a row of the groups table
type Group struct {
	ID          string  `gorm:"primaryKey;type:text"`
	Name        string  `gorm:"type:text;not null"`
	Icon        string  `gorm:"type:text;not null"`
	Color       string  `gorm:"type:text;not null"`
	CreatedAt   int64   `gorm:"not null;autoCreateTime:false"`
	OwnerNodeID *string `gorm:"type:text"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "groups"
}

// Workspace is a row of the workspaces table
type Workspace struct {
	ID          string  `gorm:"primaryKey;type:text"`
	GroupID     string  `gorm:"type:text;not null"`
	Name        string  `gorm:"type:text;not null"`
	CreatedAt   int64   `gorm:"not null;autoCreateTime:false"`
	OwnerNodeID *string `gorm:"type:text"`
}

// TableName specifies the table name for Workspace
func (Workspace) TableName() string {
	return "workspaces"
}

// Object is a row of the objects table
type Object struct {
	ID          string  `gorm:"primaryKey;type:text"`
	WorkspaceID string  `gorm:"type:text;not null"`
	Name        string  `gorm:"type:text;not null"`
	CreatedAt   int64   `gorm:"not null;autoCreateTime:false"`
	BoardType   *string `gorm:"type:text"`
	OwnerNodeID *string `gorm:"type:text"`
}

// TableName specifies the table name for Object
func (Object) TableName() string {
	return "objects"
}
