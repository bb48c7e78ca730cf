package models

// Recommendation is the response body of a recommendation request.
type Recommendation struct {
	Dose           float64 `json:"dose" example:"4"`
	Unit           string  `json:"unit" example:"IU"`
	Route          string  `json:"route" example:"subcutaneous"`
	NextCheckHours int     `json:"next_check_hours" example:"4"`
	AlgorithmUsed  string  `json:"algorithm_used" example:"Basal Bolus"`
	Level          int     `json:"level" example:"3"`
	Action         string  `json:"action" example:"Medium dose"`
	PreviousLevel  int     `json:"previous_level" example:"2"`
	Transition     string  `json:"transition" example:"up"`
	LevelSource    string  `json:"level_source" example:"supplied"`
	RequestID      string  `json:"request_id,omitempty"`
}

// RecommendRequest documents the array form of the request body. The flat
// form (GRBS1..GRBS5, Insulin1..Insulin4) is accepted as well.
type RecommendRequest struct {
	GRBS          []float64 `json:"GRBS" example:"180,200,190,185,175"`
	Insulin       []float64 `json:"Insulin,omitempty" example:"2,3,2.5,2"`
	CKD           bool      `json:"CKD,omitempty"`
	DualInotropes bool      `json:"Dual inotropes,omitempty"`
	Route         string    `json:"route,omitempty" enums:"iv,sc" example:"sc"`
	DietOrder     string    `json:"diet_order,omitempty" enums:"npo,other" example:"npo"`
	CurrentLevel  int       `json:"current_level,omitempty" example:"2"`
}

// DoseTableRow is one row of the dose table view.
type DoseTableRow struct {
	Algorithm string  `json:"algorithm"` // IV | Basal
	Level     int     `json:"level"`
	GRBSRange string  `json:"grbs_range"`
	Dose      float64 `json:"dose"`
	Unit      string  `json:"unit"`
	Action    string  `json:"action"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Code  string `json:"code,omitempty"`
}
