package trip

import (
	"errors"
	"fmt"
	"time"
)

// Funding source choices.
const (
	PaidByGovernment = "GOVERNMENT"
	PaidByHostParty  = "HOST_PARTY"
)

// Disbursement method choices.
const (
	FundsToSalaryCard = "SALARY_CARD"
	FundsInCash       = "CASH"
)

// Domain errors
var (
	ErrTripNotFound           = errors.New("trip request not found")
	ErrDeputyGovernorNotFound = errors.New("deputy governor not found")
)

// Trip is the root aggregate of a business-trip request. PassportData, queue
// entries, the order and the funding application are all owned by it and
// removed with it.
type Trip struct {
	ID                 int64     `json:"id" gorm:"primaryKey"`
	SecondName         string    `json:"second_name" gorm:"column:second_name;not null"`
	FirstName          string    `json:"first_name" gorm:"column:first_name;not null"`
	Patronymic         string    `json:"patronymic" gorm:"column:patronymic;not null"`
	Position           string    `json:"position" gorm:"not null"`
	Location           string    `json:"location" gorm:"not null"`
	Purpose            string    `json:"purpose" gorm:"not null"`
	StartDate          time.Time `json:"start_date" gorm:"column:start_date;type:date"`
	EndDate            time.Time `json:"end_date" gorm:"column:end_date;type:date"`
	DepartureTimeLimit string    `json:"departure_time_limit" gorm:"column:departure_time_limit"`
	ArrivalTimeLimit   string    `json:"arrival_time_limit" gorm:"column:arrival_time_limit"`
	WhoPays            string    `json:"who_pays" gorm:"column:who_pays"`
	ReceivingFunds     string    `json:"receiving_funds" gorm:"column:receiving_funds"`
	TransportType      string    `json:"transport_type" gorm:"column:transport_type"`
	HotelDays          int       `json:"hotel_days" gorm:"column:hotel_days"`

	// Set once the head of department approves and picks the deputy governor.
	DeputyGovernorID *int64          `json:"deputy_governor_id,omitempty" gorm:"column:deputy_governor_id"`
	DeputyGovernor   *DeputyGovernor `json:"deputy_governor,omitempty" gorm:"foreignKey:DeputyGovernorID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}

// FullName is "Фамилия Имя Отчество".
func (t *Trip) FullName() string {
	return fmt.Sprintf("%s %s %s", t.SecondName, t.FirstName, t.Patronymic)
}

// FullNameShort is the document signature form "И.О. Фамилия".
func (t *Trip) FullNameShort() string {
	first := []rune(t.FirstName)
	patronymic := []rune(t.Patronymic)
	if len(first) == 0 || len(patronymic) == 0 {
		return t.SecondName
	}
	return fmt.Sprintf("%c.%c. %s", first[0], patronymic[0], t.SecondName)
}

// Days is the trip length used for the daily allowance, never less than one.
func (t *Trip) Days() int {
	days := int(t.EndDate.Sub(t.StartDate).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// DeputyGovernor is admin-managed reference data. The document-case forms are
// used verbatim in generated documents.
type DeputyGovernor struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	FullName         string    `json:"full_name" gorm:"column:full_name;not null"`
	Position         string    `json:"position" gorm:"not null"`
	FullNameDocument string    `json:"full_name_document" gorm:"column:full_name_document;not null"`
	PositionDocument string    `json:"position_document" gorm:"column:position_document;not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (DeputyGovernor) TableName() string {
	return "deputy_governors"
}

// PassportData is the traveler's passport detail record, one per trip.
type PassportData struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TripID    int64     `json:"trip_id" gorm:"column:trip_id;not null"`
	Series    string    `json:"series"`
	Number    string    `json:"number"`
	Issuer    string    `json:"issuer"`
	IssueDate string    `json:"issue_date" gorm:"column:issue_date"`
	UnitCode  string    `json:"unit_code" gorm:"column:unit_code"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (PassportData) TableName() string {
	return "passport_data"
}
