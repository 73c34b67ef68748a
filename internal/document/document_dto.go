package document

type CreateDocumentRequest struct {
	Title       string `json:"title" binding:"required"`
	OwnerID     string `json:"owner_id" binding:"required,uuid"`
	Category    string `json:"category"`
	StoragePath string `json:"storage_path"`
}

type UpdateDocumentRequest struct {
	Title       string `json:"title" binding:"required"`
	OwnerID     string `json:"owner_id" binding:"required,uuid"`
	Category    string `json:"category"`
	StoragePath string `json:"storage_path"`
	Status      string `json:"status" binding:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
}

type DocumentResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	OwnerID     string `json:"owner_id"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status"`
	StoragePath string `json:"storage_path,omitempty"`
}
