package document

import "errors"

// OrderDTO carries the editable order fields of the deputy-governor stage.
type OrderDTO struct {
	FullNameGenitive string `json:"full_name_genitive"`
	FullName         string `json:"full_name"`
	Position         string `json:"position"`
	Period           string `json:"period"`
	Location         string `json:"location"`
	Purpose          string `json:"purpose"`
}

func (dto OrderDTO) Validate() error {
	if dto.FullName == "" {
		return errors.New("full_name is required")
	}
	if dto.Period == "" {
		return errors.New("period is required")
	}
	if dto.Location == "" {
		return errors.New("location is required")
	}
	return nil
}

// FundingDTO carries the funding figures of the purchasing stage.
type FundingDTO struct {
	Fare           string `json:"fare"`
	HotelCost      string `json:"hotel_cost"`
	DailyAllowance string `json:"daily_allowance"`
}

func (dto FundingDTO) Validate() error {
	if dto.Fare == "" {
		return errors.New("fare is required")
	}
	return nil
}
