package types

import "github.com/killallgit/cardsheet-api/internal/models"

// CardSearchRequest represents the query string of a card table search
type CardSearchRequest struct {
	Query     string `form:"q" example:"type:legendary"`
	Fields    string `form:"fields" example:"name type price"`
	Count     *int   `form:"count" binding:"omitempty,min=0" example:"150"`
	Order     string `form:"order" example:"name"`
	Direction string `form:"dir" binding:"omitempty,oneof=auto asc desc" example:"auto"`
	Unique    string `form:"unique" binding:"omitempty,oneof=cards art prints" example:"cards"`
}

// ToModel converts the request, filling absent fields from the given defaults
func (r CardSearchRequest) ToModel(defaultFields string, defaultCount int) models.SearchRequest {
	req := models.SearchRequest{
		Query:     r.Query,
		Fields:    r.Fields,
		Count:     defaultCount,
		Order:     r.Order,
		Direction: models.Direction(r.Direction),
		Unique:    models.UniqueMode(r.Unique),
	}
	if req.Fields == "" {
		req.Fields = defaultFields
	}
	if r.Count != nil {
		req.Count = *r.Count
	}
	return req.WithDefaults()
}
