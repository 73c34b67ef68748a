package resource

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypePhysical = "PHYSICAL"
	TypeSoftware = "SOFTWARE"
	TypeCloud    = "CLOUD"
)

const (
	StatusActive  = "ACTIVE"
	StatusRetired = "RETIRED"
)

// Status ketersediaan untuk unit fisik yang ber-serial number.
const (
	ItemAvailable   = "AVAILABLE"
	ItemAssigned    = "ASSIGNED"
	ItemMaintenance = "MAINTENANCE"
	ItemRetired     = "RETIRED"
)

type Resource struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"type:varchar(150);not null"`
	Type          string     `gorm:"type:varchar(20);not null;index:idx_resources_type"`
	Category      string     `gorm:"type:varchar(80)"`
	OwnerID       uuid.UUID  `gorm:"type:uuid;not null"`
	CustodianID   *uuid.UUID `gorm:"type:uuid"`
	TotalQuantity int        `gorm:"type:int;not null;default:1"`
	Status        string     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_resources_deleted_at"`
}

type ResourceItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResourceID   uuid.UUID `gorm:"type:uuid;not null;index:idx_resource_items_resource"`
	SerialNumber string    `gorm:"type:varchar(120);uniqueIndex:uq_resource_item_serial"`
	AssetTag     string    `gorm:"type:varchar(40);uniqueIndex:uq_resource_item_asset_tag"`
	Status       string    `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
