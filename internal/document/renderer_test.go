package document_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/trip-management/internal"
	"github.com/frahmantamala/trip-management/internal/document"
	"github.com/frahmantamala/trip-management/internal/trip"
)

func sampleTrip() *trip.Trip {
	return &trip.Trip{
		ID:         1,
		SecondName: "Зюся",
		FirstName:  "Сергей",
		Patronymic: "Валерьевич",
		Position:   "пресс-секретарь",
		Location:   "г. Магнитогорск",
		Purpose:    "информационным сопровождением",
		StartDate:  time.Date(2019, time.September, 20, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2019, time.September, 22, 0, 0, 0, 0, time.UTC),
		HotelDays:  2,
	}
}

var allowance = internal.AllowanceConfig{DailyAllowance: 200, HotelRate: 400}

var _ = Describe("OrderFields", func() {
	It("should compose the order document from the order record", func() {
		fields := document.OrderFields(&document.Order{
			FullNameGenitive:       "Зюси С.В.",
			FullName:               "Зюсю Сергея Валерьевича",
			Position:               "пресс-секретаря",
			Period:                 "с 20 по 22 сентября 2019 года",
			Location:               "г. Магнитогорск",
			Purpose:                "информационным сопровождением",
			DeputyGovernor:         "Мамин Виктор Викторович",
			DeputyGovernorPosition: "Первый заместитель Губернатора",
		})

		Expect(fields.BlankTarget).To(Equal("Распоряжение"))
		Expect(fields.Theme).To(Equal("О командировании Зюси С.В."))
		Expect(fields.DocContent).To(Equal(
			"Командировать Зюсю Сергея Валерьевича, пресс-секретаря, " +
				"с 20 по 22 сентября 2019 года в г. Магнитогорск " +
				"в связи с информационным сопровождением"))
		Expect(fields.Author).To(Equal("Мамин Виктор Викторович"))
		Expect(fields.AuthorPost).To(Equal("Первый заместитель Губернатора"))
	})

	It("should use the euphonic preposition before purposes starting with с", func() {
		fields := document.OrderFields(&document.Order{
			Purpose: "сопровождением делегации",
		})
		Expect(fields.DocContent).To(ContainSubstring("в связи со сопровождением делегации"))
	})
})

var _ = Describe("FundingFields", func() {
	It("should compose the funding application addressed to the deputy governor", func() {
		t := sampleTrip()
		fields := document.FundingFields(&document.ApplicationFunding{
			DeputyGovernor:         "В.В. Мамину",
			DeputyGovernorPosition: "Первому заместителю Губернатора",
			Fare:                   "1500",
			HotelCost:              "800",
			DailyAllowance:         "400",
		}, t, allowance)

		Expect(fields.BlankTarget).To(Equal("Заявка"))
		Expect(fields.Adresat).To(Equal("Первому заместителю Губернатора<br/>В.В. Мамину"))
		Expect(fields.DocContent).To(ContainSubstring("Для командировки в г. Магнитогорск"))
		Expect(fields.DocContent).To(ContainSubstring("с 20 по 22 сентября 2019 года"))
		Expect(fields.DocContent).To(ContainSubstring("1. Транспортные расходы - 1500 руб."))
		Expect(fields.DocContent).To(ContainSubstring("2. Проживание в гостинице - 800 руб."))
		Expect(fields.DocContent).To(ContainSubstring("3. Суточные - 2 суток - 400 руб."))
		Expect(fields.Author).To(Equal("С.В. Зюся"))
		Expect(fields.AuthorPost).To(Equal("пресс-секретарь"))
	})
})

var _ = Describe("OrderDefaults", func() {
	It("should prefill the order from the trip request", func() {
		t := sampleTrip()
		o := document.OrderDefaults(t, document.NewPassthroughInflector())

		Expect(o.TripID).To(Equal(int64(1)))
		Expect(o.FullName).To(Equal("Зюся Сергей Валерьевич"))
		Expect(o.FullNameGenitive).To(Equal("Зюся С.В."))
		Expect(o.Period).To(Equal("с 20 по 22 сентября 2019 года"))
		Expect(o.Location).To(Equal("г. Магнитогорск"))
		Expect(o.Purpose).To(Equal("информационным сопровождением"))
	})

	It("should snapshot the deputy governor when one is attached", func() {
		t := sampleTrip()
		t.DeputyGovernor = &trip.DeputyGovernor{
			FullName: "Мамин Виктор Викторович",
			Position: "Первый заместитель Губернатора",
		}

		o := document.OrderDefaults(t, document.NewPassthroughInflector())
		Expect(o.DeputyGovernor).To(Equal("Мамин Виктор Викторович"))
		Expect(o.DeputyGovernorPosition).To(Equal("Первый заместитель Губернатора"))
	})
})

var _ = Describe("FundingDefaults", func() {
	It("should compute the allowance figures from the configured rates", func() {
		t := sampleTrip()
		app := document.FundingDefaults(t, allowance)

		// Two trip days at 200 per day, two hotel days at 400 per day.
		Expect(app.DailyAllowance).To(Equal("400"))
		Expect(app.HotelCost).To(Equal("800"))
		Expect(app.Fare).To(BeEmpty())
	})

	It("should use the document-case deputy governor forms", func() {
		t := sampleTrip()
		t.DeputyGovernor = &trip.DeputyGovernor{
			FullNameDocument: "В.В. Мамину",
			PositionDocument: "Первому заместителю Губернатора",
		}

		app := document.FundingDefaults(t, allowance)
		Expect(app.DeputyGovernor).To(Equal("В.В. Мамину"))
		Expect(app.DeputyGovernorPosition).To(Equal("Первому заместителю Губернатора"))
	})
})
