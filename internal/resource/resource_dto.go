package resource

type CreateResourceRequest struct {
	Name          string `json:"name" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=PHYSICAL SOFTWARE CLOUD"`
	Category      string `json:"category"`
	OwnerID       string `json:"owner_id" binding:"required,uuid"`
	CustodianID   string `json:"custodian_id" binding:"omitempty,uuid"`
	TotalQuantity int    `json:"total_quantity" binding:"omitempty,min=1"`
}

type UpdateResourceRequest struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category"`
	OwnerID       string `json:"owner_id" binding:"required,uuid"`
	CustodianID   string `json:"custodian_id" binding:"omitempty,uuid"`
	TotalQuantity int    `json:"total_quantity" binding:"omitempty,min=1"`
	Status        string `json:"status" binding:"required,oneof=ACTIVE RETIRED"`
}

type CreateResourceItemRequest struct {
	SerialNumber string `json:"serial_number" binding:"required"`
}

type ResourceResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Category      string `json:"category,omitempty"`
	OwnerID       string `json:"owner_id"`
	CustodianID   string `json:"custodian_id,omitempty"`
	TotalQuantity int    `json:"total_quantity"`
	Status        string `json:"status"`
}

type ResourceItemResponse struct {
	ID           string `json:"id"`
	ResourceID   string `json:"resource_id"`
	SerialNumber string `json:"serial_number"`
	AssetTag     string `json:"asset_tag"`
	Status       string `json:"status"`
}
