package pdf

import (
	"SmartHospital/models"
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderReceipt generates a PDF receipt for a paid bill. The bill must be
// loaded with its Patient, Appointment and Appointment.Doctor associations.
func RenderReceipt(bill *models.Bill) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 10, 10)
	doc.AddPage()

	doc.SetFont("Arial", "B", 14)
	doc.SetTextColor(0, 51, 102)
	doc.CellFormat(0, 10, "Smart Hospital", "", 1, "C", false, 0, "")

	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 7, "Payment Receipt", "", 1, "C", false, 0, "")

	doc.SetFont("Arial", "B", 12)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(0, 10, "Appointment", "1", 1, "C", false, 0, "")
	addDetail(doc, "Bill ID", fmt.Sprintf("%d", bill.ID), true)
	addDetail(doc, "Patient", bill.Patient.FullName, true)
	addDetail(doc, "Doctor", bill.Appointment.Doctor.FullName, true)
	addDetail(doc, "Specialization", bill.Appointment.Doctor.Specialization, true)
	addDetail(doc, "Appointment ID", fmt.Sprintf("%d", bill.AppointmentID), true)
	addDetail(doc, "Appointment Date", bill.Appointment.AppointmentDate.Format("2006-01-02 15:04"), true)

	doc.CellFormat(0, 10, "Billing", "1", 1, "C", false, 0, "")
	addDetail(doc, "Bill Status", bill.Status, false)
	addDetail(doc, "Due Date", bill.DueDate.Format("2006-01-02"), false)
	addDetail(doc, "Issued", bill.CreatedAt.Format("2006-01-02"), false)
	doc.SetFont("Arial", "B", 13)
	addDetail(doc, "Amount Paid", fmt.Sprintf("%.2f", bill.Amount), true)

	doc.SetTextColor(0, 0, 0)
	doc.MultiCell(0, 5, "Thank you for choosing Smart Hospital.", "", "L", false)

	doc.SetY(doc.GetY() + 12)
	doc.CellFormat(0, 10, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addDetail(doc *gofpdf.Fpdf, label, value string, emphasized bool) {
	if emphasized {
		doc.SetFont("Arial", "B", 12)
		doc.SetFillColor(255, 255, 255)
	} else {
		doc.SetFont("Arial", "", 10)
		doc.SetFillColor(240, 240, 240)
	}
	doc.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	doc.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
