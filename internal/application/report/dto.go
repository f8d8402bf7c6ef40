package report

import "github.com/khata/backend/internal/domain/report"

// GenerateRequest selects the report kind and the entities it covers.
// Dates use the YYYY-MM-DD format. The All flags select every supplier or
// party and ignore the matching id list.
type GenerateRequest struct {
	Kind        string  `json:"kind" binding:"required"`
	SupplierIDs []int64 `json:"supplier_ids"`
	PartyIDs    []int64 `json:"party_ids"`
	SupplierAll bool    `json:"supplier_all"`
	PartyAll    bool    `json:"party_all"`
	From        string  `json:"from" binding:"required"`
	To          string  `json:"to" binding:"required"`
}

// KindResponse describes one report kind for clients
type KindResponse struct {
	Key           string `json:"key"`
	Title         string `json:"title"`
	HeaderRole    string `json:"header_role"`
	SubheaderRole string `json:"subheader_role"`
	HeaderOnly    bool   `json:"header_only"`
}

// ToKindResponses lists every report kind
func ToKindResponses() []KindResponse {
	kinds := report.Kinds()
	out := make([]KindResponse, len(kinds))
	for i, k := range kinds {
		spec := k.Spec()
		out[i] = KindResponse{
			Key:           k.String(),
			Title:         spec.Title,
			HeaderRole:    spec.HeaderRole.String(),
			SubheaderRole: spec.SubheaderRole.String(),
			HeaderOnly:    spec.HeaderOnly,
		}
	}
	return out
}
