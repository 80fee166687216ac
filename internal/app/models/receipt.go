package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReceiptService is one ref-numbered line printed on the official receipt.
type ReceiptService struct {
	Ref             int     `json:"ref" bson:"ref"`
	TransactionType string  `json:"transactionType" bson:"transactionType"`
	Description     string  `json:"description" bson:"description"`
	Qty             int     `json:"qty" bson:"qty"`
	UnitPrice       float64 `json:"unitPrice" bson:"unitPrice"`
	Amount          float64 `json:"amount" bson:"amount"`
}

// Receipt is the customer-facing proof of payment. ORNumber is globally
// unique, sequential per calendar year.
type Receipt struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ORNumber         string             `json:"orNumber" bson:"orNumber"`
	PaymentID        primitive.ObjectID `json:"paymentId" bson:"paymentId"`
	CashierPaymentID primitive.ObjectID `json:"cashierPaymentId" bson:"cashierPaymentId"`
	PatientID        string             `json:"patientId" bson:"patientId"`
	PatientHRN       string             `json:"patientHRN" bson:"patientHRN"`
	PatientName      string             `json:"patientName" bson:"patientName"`
	TransactionIDs   []string           `json:"transactionIds" bson:"transactionIds"`
	BillNumber       string             `json:"billNumber" bson:"billNumber"`
	Subtotal         float64            `json:"subtotal" bson:"subtotal"`
	DiscountTypes    []string           `json:"discountTypes" bson:"discountTypes"`
	DiscountRate     float64            `json:"discountRate" bson:"discountRate"`
	DiscountAmount   float64            `json:"discountAmount" bson:"discountAmount"`
	PromissoryAmount float64            `json:"promissoryAmount" bson:"promissoryAmount"`
	FinalTotal       float64            `json:"finalTotal" bson:"finalTotal"`
	AmountReceived   float64            `json:"amountReceived" bson:"amountReceived"`
	ChangeGiven      float64            `json:"changeGiven" bson:"changeGiven"`
	ProcessedBy      string             `json:"processedBy" bson:"processedBy"`
	ReceiptDate      time.Time          `json:"receiptDate" bson:"receiptDate"`
	Services         []ReceiptService   `json:"services" bson:"services"`
	AdmissionNumber  string             `json:"admissionNumber,omitempty" bson:"admissionNumber,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
}

// BuildReceiptServices flattens transactions into ref-numbered receipt lines,
// deriving unit price from the line total and quantity.
func BuildReceiptServices(transactions []Transaction) []ReceiptService {
	var lines []ReceiptService
	ref := 1
	for _, tx := range transactions {
		for _, s := range tx.Services {
			qty := s.Qty
			if qty <= 0 {
				qty = 1
			}
			unitPrice := s.Amount
			if qty > 0 {
				unitPrice = s.Amount / float64(qty)
			}
			lines = append(lines, ReceiptService{
				Ref:             ref,
				TransactionType: s.Type,
				Description:     s.Description,
				Qty:             qty,
				UnitPrice:       unitPrice,
				Amount:          s.Amount,
			})
			ref++
		}
	}
	return lines
}
