package trip

import (
	"errors"
	"time"
)

// CreateTripDTO is the submission payload. Field names mirror the request
// form the travelers fill in.
type CreateTripDTO struct {
	SecondName         string `json:"second_name"`
	FirstName          string `json:"first_name"`
	Patronymic         string `json:"patronymic"`
	Position           string `json:"position"`
	Location           string `json:"location"`
	Purpose            string `json:"purpose"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	DepartureTimeLimit string `json:"departure_time_limit"`
	ArrivalTimeLimit   string `json:"arrival_time_limit"`
	WhoPays            string `json:"who_pays"`
	ReceivingFunds     string `json:"receiving_funds"`
	TransportType      string `json:"transport_type"`
	HotelDays          int    `json:"hotel_days"`

	Passport *PassportDTO `json:"passport,omitempty"`
}

type PassportDTO struct {
	Series    string `json:"series"`
	Number    string `json:"number"`
	Issuer    string `json:"issuer"`
	IssueDate string `json:"issue_date"`
	UnitCode  string `json:"unit_code"`
}

const dateLayout = "2006-01-02"

// Validate checks the submission payload and reports the first problem found.
func (dto CreateTripDTO) Validate() error {
	if dto.SecondName == "" || dto.FirstName == "" || dto.Patronymic == "" {
		return errors.New("full name is required")
	}
	if dto.Position == "" {
		return errors.New("position is required")
	}
	if dto.Location == "" {
		return errors.New("trip location is required")
	}
	if dto.Purpose == "" {
		return errors.New("trip purpose is required")
	}
	start, err := time.Parse(dateLayout, dto.StartDate)
	if err != nil {
		return errors.New("start_date must be a valid YYYY-MM-DD date")
	}
	end, err := time.Parse(dateLayout, dto.EndDate)
	if err != nil {
		return errors.New("end_date must be a valid YYYY-MM-DD date")
	}
	if end.Before(start) {
		return errors.New("start_date must not be after end_date")
	}
	if dto.WhoPays != PaidByGovernment && dto.WhoPays != PaidByHostParty {
		return errors.New("who_pays must be either GOVERNMENT or HOST_PARTY")
	}
	if dto.ReceivingFunds != FundsToSalaryCard && dto.ReceivingFunds != FundsInCash {
		return errors.New("receiving_funds must be either SALARY_CARD or CASH")
	}
	if dto.HotelDays < 0 {
		return errors.New("hotel_days must not be negative")
	}
	return nil
}

// ToTrip builds the aggregate from a payload that already passed Validate.
func (dto CreateTripDTO) ToTrip() *Trip {
	start, _ := time.Parse(dateLayout, dto.StartDate)
	end, _ := time.Parse(dateLayout, dto.EndDate)
	now := time.Now()
	return &Trip{
		SecondName:         dto.SecondName,
		FirstName:          dto.FirstName,
		Patronymic:         dto.Patronymic,
		Position:           dto.Position,
		Location:           dto.Location,
		Purpose:            dto.Purpose,
		StartDate:          start,
		EndDate:            end,
		DepartureTimeLimit: dto.DepartureTimeLimit,
		ArrivalTimeLimit:   dto.ArrivalTimeLimit,
		WhoPays:            dto.WhoPays,
		ReceivingFunds:     dto.ReceivingFunds,
		TransportType:      dto.TransportType,
		HotelDays:          dto.HotelDays,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (dto *PassportDTO) ToPassportData(tripID int64) *PassportData {
	now := time.Now()
	return &PassportData{
		TripID:    tripID,
		Series:    dto.Series,
		Number:    dto.Number,
		Issuer:    dto.Issuer,
		IssueDate: dto.IssueDate,
		UnitCode:  dto.UnitCode,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TripSummary is one row of the management listing.
type TripSummary struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Location  string `json:"location"`
	Position  string `json:"position"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

func (t *Trip) ToSummary(status string) TripSummary {
	return TripSummary{
		ID:        t.ID,
		FullName:  t.FullName(),
		Location:  t.Location,
		Position:  t.Position,
		StartDate: t.StartDate.Format(dateLayout),
		EndDate:   t.EndDate.Format(dateLayout),
		Status:    status,
	}
}
