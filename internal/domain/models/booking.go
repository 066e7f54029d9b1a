package models

// Passenger is one traveller on a booking. Rows are owned by their
// parent booking and copied wholesale on approval.
type Passenger struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Gender      string `json:"gender"`
	Category    string `json:"category"`
	Birthday    string `json:"birthday,omitempty"`
	Email       string `json:"email,omitempty"`
	ContactNo   string `json:"contactNo,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// Instalment is one scheduled partial-payment obligation.
type Instalment struct {
	ID         int64   `json:"id"`
	DueDate    string  `json:"dueDate"`
	Amount     float64 `json:"amount"`
	PaidAmount float64 `json:"paidAmount"`
	Type       string  `json:"type,omitempty"`
	Status     string  `json:"status"`
}

// SupplierCost is one expected cost line owed to a supplier.
// Owed is always derived as Amount - PaidAmount; it is never stored.
type SupplierCost struct {
	ID          int64   `json:"id"`
	Supplier    string  `json:"supplier"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	PaidAmount  float64 `json:"paidAmount"`
	Description string  `json:"description,omitempty"`
}

// PendingBooking is a draft awaiting approval. Destroyed on approval
// (converted to a Booking) or on rejection.
type PendingBooking struct {
	ID            int64  `json:"id"`
	RefNo         string `json:"refNo"`
	PaxName       string `json:"paxName"`
	AgentName     string `json:"agentName"`
	TeamName      string `json:"teamName"`
	NumPax        int    `json:"numPax"`
	PNR           string `json:"pnr"`
	Airline       string `json:"airline"`
	FromTo        string `json:"fromTo"`
	BookingType   string `json:"bookingType"`
	BookingStatus string `json:"bookingStatus"`
	Description   string `json:"description,omitempty"`
	PCDate        string `json:"pcDate"`
	TravelDate    string `json:"travelDate,omitempty"`
	PaymentMethod string `json:"paymentMethod"`

	Revenue   float64 `json:"revenue"`
	ProdCost  float64 `json:"prodCost"`
	TransFee  float64 `json:"transFee"`
	Surcharge float64 `json:"surcharge"`
	Profit    float64 `json:"profit"`
	Balance   float64 `json:"balance"`

	CreatedByID   int64  `json:"createdById"`
	CreatedByName string `json:"createdByName,omitempty"`
	CreatedAt     string `json:"createdAt"`

	Passengers      []Passenger      `json:"passengers,omitempty"`
	InitialPayments []InitialPayment `json:"initialPayments,omitempty"`
	Instalments     []Instalment     `json:"instalments,omitempty"`
	SupplierCosts   []SupplierCost   `json:"supplierCosts,omitempty"`
}

// Booking is the live (approved) record. FolderNo is assigned exactly
// once at approval and is immutable afterwards.
type Booking struct {
	ID            int64  `json:"id"`
	FolderNo      string `json:"folderNo"`
	RefNo         string `json:"refNo"`
	PaxName       string `json:"paxName"`
	AgentName     string `json:"agentName"`
	TeamName      string `json:"teamName"`
	NumPax        int    `json:"numPax"`
	PNR           string `json:"pnr"`
	Airline       string `json:"airline"`
	FromTo        string `json:"fromTo"`
	BookingType   string `json:"bookingType"`
	BookingStatus string `json:"bookingStatus"`
	Description   string `json:"description,omitempty"`
	PCDate        string `json:"pcDate"`
	TravelDate    string `json:"travelDate,omitempty"`
	PaymentMethod string `json:"paymentMethod"`

	Revenue   float64 `json:"revenue"`
	ProdCost  float64 `json:"prodCost"`
	TransFee  float64 `json:"transFee"`
	Surcharge float64 `json:"surcharge"`
	Profit    float64 `json:"profit"`
	Balance   float64 `json:"balance"`

	ApprovedByID int64  `json:"approvedById"`
	IsSettled    bool   `json:"isSettled"`
	SettledAt    string `json:"settledAt,omitempty"`
	CreatedAt    string `json:"createdAt"`

	Passengers       []Passenger       `json:"passengers,omitempty"`
	InitialPayments  []InitialPayment  `json:"initialPayments,omitempty"`
	Instalments      []Instalment      `json:"instalments,omitempty"`
	SupplierCosts    []SupplierCost    `json:"supplierCosts,omitempty"`
	Transactions     []Transaction     `json:"transactions,omitempty"`
	SupplierPayments []SupplierPayment `json:"supplierPayments,omitempty"`
}
