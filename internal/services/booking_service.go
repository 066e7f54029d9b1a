package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

// BookingService manages draft bookings up to the approval gate.
type BookingService struct {
	PendingRepo repositories.PendingRepository
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) pending() repositories.PendingRepository {
	if s.PendingRepo.DB != nil {
		return s.PendingRepo
	}
	return repositories.PendingRepository{DB: s.db()}
}

// Create validates and persists a new draft with all children in one
// transaction. The product cost is always derived from the supplier
// lines; any client-supplied figure is ignored.
func (s BookingService) Create(input models.BookingInput, creatorID int64) (models.PendingBooking, error) {
	if strings.TrimSpace(input.RefNo) == "" {
		return models.PendingBooking{}, domain.ValidationError{Field: "refNo", Msg: "reference number is required"}
	}
	if strings.TrimSpace(input.PaxName) == "" {
		return models.PendingBooking{}, domain.ValidationError{Field: "paxName", Msg: "passenger name is required"}
	}
	method := strings.ToUpper(strings.TrimSpace(input.PaymentMethod))
	if method != domain.PaymentFull && method != domain.PaymentInternal {
		return models.PendingBooking{}, domain.ValidationError{Field: "paymentMethod", Msg: "must be FULL or INTERNAL"}
	}

	costs := supplierCostsFromInput(input.SupplierCosts)
	prodCost := domain.ProductCost(costs)

	revenue := input.Revenue.Value()
	transFee := input.TransFee.Value()
	surcharge := input.Surcharge.Value()
	profit := domain.Profit(revenue, prodCost, transFee, surcharge)

	var depositTotal float64
	for _, p := range input.InitialPayments {
		depositTotal += p.Amount.Value()
	}
	balance := domain.Balance(revenue, depositTotal)

	var instTotal float64
	for _, i := range input.Instalments {
		if _, err := utils.ParseDate(i.DueDate); err != nil {
			return models.PendingBooking{}, domain.ValidationError{
				Field: "instalments",
				Msg:   fmt.Sprintf("invalid due date %q, want YYYY-MM-DD", i.DueDate),
			}
		}
		instTotal += i.Amount.Value()
	}
	if method == domain.PaymentInternal && !domain.InstalmentMatchesBalance(balance, instTotal) {
		return models.PendingBooking{}, domain.ValidationError{
			Field: "instalments",
			Msg: fmt.Sprintf("outstanding balance is %s but instalments total %s; they must match",
				utils.FormatMoney(balance), utils.FormatMoney(instTotal)),
		}
	}

	numPax := input.NumPax
	if numPax <= 0 {
		numPax = len(input.Passengers)
	}

	draft := models.PendingBooking{
		RefNo:         strings.TrimSpace(input.RefNo),
		PaxName:       strings.TrimSpace(input.PaxName),
		AgentName:     input.AgentName,
		TeamName:      input.TeamName,
		NumPax:        numPax,
		PNR:           input.PNR,
		Airline:       input.Airline,
		FromTo:        input.FromTo,
		BookingType:   input.BookingType,
		BookingStatus: domain.StatusPending,
		Description:   input.Description,
		PCDate:        input.PCDate,
		TravelDate:    input.TravelDate,
		PaymentMethod: method,
		Revenue:       revenue,
		ProdCost:      prodCost,
		TransFee:      transFee,
		Surcharge:     surcharge,
		Profit:        profit,
		Balance:       balance,
		CreatedByID:   creatorID,
	}

	repo := s.pending()
	var newID int64
	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		id, err := repo.Insert(tx, draft)
		if err != nil {
			return domain.InternalError{Msg: "failed to save booking", Err: err}
		}
		for _, p := range input.Passengers {
			if err := repo.InsertPassenger(tx, id, passengerFromInput(p)); err != nil {
				return domain.InternalError{Msg: "failed to save passenger", Err: err}
			}
		}
		for _, p := range input.InitialPayments {
			pay := models.InitialPayment{
				Amount:            p.Amount.Value(),
				TransactionMethod: p.TransactionMethod,
				PaymentDate:       p.PaymentDate,
			}
			if err := repo.InsertInitialPayment(tx, id, pay); err != nil {
				return domain.InternalError{Msg: "failed to save deposit", Err: err}
			}
		}
		if method == domain.PaymentInternal {
			for _, i := range input.Instalments {
				inst := models.Instalment{
					DueDate: i.DueDate,
					Amount:  i.Amount.Value(),
					Status:  domain.InstalmentPending,
				}
				if err := repo.InsertInstalment(tx, id, inst); err != nil {
					return domain.InternalError{Msg: "failed to save instalment", Err: err}
				}
			}
		}
		for _, c := range costs {
			if err := repo.InsertSupplierCost(tx, id, c); err != nil {
				return domain.InternalError{Msg: "failed to save supplier cost", Err: err}
			}
		}
		newID = id
		return nil
	})
	if err != nil {
		return models.PendingBooking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("pending_id=%d ref=%s", newID, draft.RefNo))
	return repo.GetByID(nil, newID)
}

// Update overwrites a draft's descriptive and financial fields,
// recomputing profit and balance. The strict instalment-vs-balance
// rule is re-enforced here so an edit cannot break the match that
// create guaranteed. Lead-passenger fields overwrite every linked
// passenger row.
func (s BookingService) Update(id int64, input models.BookingInput) (models.PendingBooking, error) {
	if id <= 0 {
		return models.PendingBooking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}

	repo := s.pending()
	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		existing, err := repo.GetByID(tx, id)
		if err != nil {
			return err
		}

		revenue := input.Revenue.Value()
		prodCost := input.ProdCost.Value()
		transFee := input.TransFee.Value()
		surcharge := input.Surcharge.Value()
		profit := domain.Profit(revenue, prodCost, transFee, surcharge)
		balance := domain.Balance(revenue, domain.DepositTotal(existing.InitialPayments))

		if existing.PaymentMethod == domain.PaymentInternal {
			instTotal := domain.InstalmentTotal(existing.Instalments)
			if !domain.InstalmentMatchesBalance(balance, instTotal) {
				return domain.ValidationError{
					Field: "instalments",
					Msg: fmt.Sprintf("outstanding balance is %s but instalments total %s; they must match",
						utils.FormatMoney(balance), utils.FormatMoney(instTotal)),
				}
			}
		}

		merged := existing
		merged.RefNo = input.RefNo
		merged.PaxName = input.PaxName
		merged.AgentName = input.AgentName
		merged.NumPax = input.NumPax
		merged.PNR = input.PNR
		merged.Airline = input.Airline
		merged.FromTo = input.FromTo
		merged.BookingType = input.BookingType
		merged.PCDate = input.PCDate
		merged.TravelDate = input.TravelDate
		merged.Revenue = revenue
		merged.ProdCost = prodCost
		merged.TransFee = transFee
		merged.Surcharge = surcharge
		merged.Profit = profit
		merged.Balance = balance

		if err := repo.UpdateScalars(tx, merged); err != nil {
			return err
		}
		if len(input.Passengers) > 0 {
			if err := repo.UpdateLeadPassenger(tx, id, passengerFromInput(input.Passengers[0])); err != nil {
				return domain.InternalError{Msg: "failed to update passengers", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return models.PendingBooking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "update", fmt.Sprintf("pending_id=%d", id))
	return repo.GetByID(nil, id)
}

// List returns all drafts newest-first.
func (s BookingService) List() ([]models.PendingBooking, error) {
	return s.pending().List()
}

func passengerFromInput(p models.PassengerInput) models.Passenger {
	return models.Passenger{
		Title:       p.Title,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Gender:      p.Gender,
		Category:    p.Category,
		Birthday:    p.Birthday,
		Email:       p.Email,
		ContactNo:   p.ContactNo,
		Nationality: p.Nationality,
	}
}

func supplierCostsFromInput(in []models.SupplierCostInput) []models.SupplierCost {
	out := make([]models.SupplierCost, 0, len(in))
	for _, c := range in {
		out = append(out, models.SupplierCost{
			ID:          int64(c.ID),
			Supplier:    c.Supplier,
			Category:    c.Category,
			Amount:      c.Amount.Value(),
			Description: c.Description,
		})
	}
	return out
}
