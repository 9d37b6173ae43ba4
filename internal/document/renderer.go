package document

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/trip-management/internal"
	"github.com/frahmantamala/trip-management/internal/trip"
	"github.com/shopspring/decimal"
)

// OrderFields composes the travel-order document from the order record.
func OrderFields(o *Order) TemplateFields {
	content := fmt.Sprintf("Командировать %s, %s, %s в %s в связи %s",
		o.FullName, o.Position, o.Period, o.Location, withPurposePreposition(o.Purpose))

	return TemplateFields{
		BlankTarget: "Распоряжение",
		Theme:       fmt.Sprintf("О командировании %s", o.FullNameGenitive),
		DocContent:  content,
		Author:      o.DeputyGovernor,
		AuthorPost:  o.DeputyGovernorPosition,
	}
}

// withPurposePreposition prefixes the trip purpose with "с" or, before words
// starting with "с", the euphonic "со".
func withPurposePreposition(purpose string) string {
	if strings.HasPrefix(strings.ToLower(purpose), "с") {
		return "со " + purpose
	}
	return "с " + purpose
}

// FundingFields composes the funding application addressed to the deputy
// governor. The daily-allowance total is recomputed from the configured rate
// so the document always reflects the current figures.
func FundingFields(app *ApplicationFunding, t *trip.Trip, allowance internal.AllowanceConfig) TemplateFields {
	allowanceTotal := allowance.DailyAllowanceDecimal().Mul(decimal.NewFromInt(int64(t.HotelDays)))

	var content strings.Builder
	content.WriteString(fmt.Sprintf("Для командировки в %s", t.Location))
	content.WriteString(fmt.Sprintf(" %s ", FormatPeriod(t.StartDate, t.EndDate)))
	content.WriteString(fmt.Sprintf("прошу выдать денежные средства в размере:\n"+
		" 1. Транспортные расходы - %s руб.\n"+
		"2. Проживание в гостинице - %s руб.\n"+
		"3. Суточные - %d суток - %s руб.\n",
		app.Fare, app.HotelCost, t.HotelDays, allowanceTotal.String()))

	return TemplateFields{
		BlankTarget: "Заявка",
		Adresat:     app.DeputyGovernorPosition + "<br/>" + app.DeputyGovernor,
		Theme:       "Заявка на финансирование командировки",
		DocContent:  content.String(),
		Author:      t.FullNameShort(),
		AuthorPost:  t.Position,
	}
}

// OrderDefaults derives the order prefill from the trip request. Names go
// through the inflector: the addressee line needs the accusative, the
// heading the genitive.
func OrderDefaults(t *trip.Trip, inf Inflector) *Order {
	o := &Order{
		TripID:   t.ID,
		FullName: strings.Join([]string{
			inf.Inflect(t.SecondName, CaseAccusative),
			inf.Inflect(t.FirstName, CaseAccusative),
			inf.Inflect(t.Patronymic, CaseAccusative),
		}, " "),
		Position: InflectPhrase(inf, t.Position, CaseGenitive),
		FullNameGenitive: fmt.Sprintf("%s %s.%s.",
			inf.Inflect(t.SecondName, CaseGenitive),
			firstRune(inf.Inflect(t.FirstName, CaseGenitive)),
			firstRune(inf.Inflect(t.Patronymic, CaseGenitive))),
		Period:   FormatPeriod(t.StartDate, t.EndDate),
		Location: t.Location,
		Purpose:  t.Purpose,
	}
	if t.DeputyGovernor != nil {
		o.DeputyGovernor = t.DeputyGovernor.FullName
		o.DeputyGovernorPosition = t.DeputyGovernor.Position
	}
	return o
}

// FundingDefaults derives the funding prefill: allowance figures from the
// configured rates and the deputy-governor snapshot in document case.
func FundingDefaults(t *trip.Trip, allowance internal.AllowanceConfig) *ApplicationFunding {
	app := &ApplicationFunding{
		TripID: t.ID,
		DailyAllowance: allowance.DailyAllowanceDecimal().
			Mul(decimal.NewFromInt(int64(t.Days()))).String(),
		HotelCost: allowance.HotelRateDecimal().
			Mul(decimal.NewFromInt(int64(t.HotelDays))).String(),
	}
	if t.DeputyGovernor != nil {
		app.DeputyGovernor = t.DeputyGovernor.FullNameDocument
		app.DeputyGovernorPosition = t.DeputyGovernor.PositionDocument
	}
	return app
}
