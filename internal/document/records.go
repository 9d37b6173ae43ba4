package document

import (
	"errors"
	"time"
)

// Document types available for download.
const (
	TypeOrder              = "order"
	TypeFundingApplication = "funding_application"
)

// Domain errors
var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrFundingNotFound         = errors.New("funding application not found")
	ErrUnsupportedDocumentType = errors.New("unsupported document type")
)

// Order is the travel order record, edited by the deputy-governor and
// personnel stages. Text fields are kept as entered: a value typed by a human
// is never overwritten by a computed default.
type Order struct {
	ID                     int64     `json:"id" gorm:"primaryKey"`
	TripID                 int64     `json:"trip_id" gorm:"column:trip_id;not null;uniqueIndex"`
	FullNameGenitive       string    `json:"full_name_genitive" gorm:"column:full_name_genitive"`
	FullName               string    `json:"full_name" gorm:"column:full_name"`
	Position               string    `json:"position"`
	Period                 string    `json:"period"`
	Location               string    `json:"location"`
	Purpose                string    `json:"purpose"`
	DeputyGovernor         string    `json:"deputy_governor" gorm:"column:deputy_governor"`
	DeputyGovernorPosition string    `json:"deputy_governor_position" gorm:"column:deputy_governor_position"`
	ScanRef                string    `json:"scan_ref" gorm:"column:scan_ref"`
	CreatedAt              time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt              time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// ApplicationFunding is the funding application record owned by the
// purchasing stage. Amounts are stored as entered; computed defaults only
// fill fields that are still empty.
type ApplicationFunding struct {
	ID                     int64     `json:"id" gorm:"primaryKey"`
	TripID                 int64     `json:"trip_id" gorm:"column:trip_id;not null;uniqueIndex"`
	DeputyGovernor         string    `json:"deputy_governor" gorm:"column:deputy_governor"`
	DeputyGovernorPosition string    `json:"deputy_governor_position" gorm:"column:deputy_governor_position"`
	Fare                   string    `json:"fare"`
	HotelCost              string    `json:"hotel_cost" gorm:"column:hotel_cost"`
	DailyAllowance         string    `json:"daily_allowance" gorm:"column:daily_allowance"`
	CreatedAt              time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt              time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ApplicationFunding) TableName() string {
	return "application_fundings"
}

// TemplateFields is the fixed shape handed to the external template-rendering
// service. Field names follow the service's wire contract.
type TemplateFields struct {
	BlankTarget string `json:"BlankTarget"`
	Adresat     string `json:"Adresat"`
	Theme       string `json:"Theme"`
	DocContent  string `json:"DocContent"`
	AuthorPost  string `json:"AuthorPost"`
	Author      string `json:"Author"`
}
