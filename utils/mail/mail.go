package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"github.com/joy095/roomstay/logger"
	"github.com/joy095/roomstay/models/booking_models"
	"github.com/joy095/roomstay/models/customer_models"
	"github.com/joy095/roomstay/models/hotel_models"
	"github.com/joy095/roomstay/models/payment_models"
)

// Email template paths
const (
	bookingConfirmationTemplate = "templates/email/booking_confirmation.html"
	paymentConfirmationTemplate = "templates/email/payment_confirmation.html"
)

// sendEmail renders the template and delivers it over SMTP.
func sendEmail(toEmail, subject, templatePath string, data interface{}) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", os.Getenv("FROM_EMAIL"))
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)

	t, err := template.ParseFiles(templatePath)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to parse email template %s: %v", templatePath, err)
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", templatePath, err)
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	mailer.SetBody("text/html", body.String())

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		logger.ErrorLogger.Errorf("Invalid SMTP port: %v", err)
		return fmt.Errorf("invalid SMTP port: %w", err)
	}

	smtpHost := os.Getenv("SMTP_HOST")
	dialer := gomail.NewDialer(smtpHost, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	dialer.TLSConfig = &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         smtpHost,
	}

	if err := dialer.DialAndSend(mailer); err != nil {
		logger.ErrorLogger.Errorf("Failed to send email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.InfoLogger.Infof("Sent email to %s", toEmail)
	return nil
}

type bookingEmailData struct {
	CustomerName string
	HotelName    string
	RoomType     string
	BookingID    string
	CheckInDate  string
	CheckOutDate string
	TotalAmount  string
}

type paymentEmailData struct {
	CustomerName string
	HotelName    string
	BookingID    string
	PaymentID    string
	CheckInDate  string
	CheckOutDate string
	TotalAmount  string
	AmountPaid   string
}

// SendBookingConfirmation mails the customer after a draft booking is
// created. Callers treat a failure as non-fatal; the booking has already
// committed.
func SendBookingConfirmation(customer *customer_models.Customer, booking *booking_models.Booking,
	hotel *hotel_models.Hotel, room *hotel_models.Room) error {

	subject := "Booking Confirmation - " + hotel.HotelName
	return sendEmail(customer.Email, subject, bookingConfirmationTemplate, bookingEmailData{
		CustomerName: customer.UserName,
		HotelName:    hotel.HotelName,
		RoomType:     room.RoomType,
		BookingID:    booking.ID.String(),
		CheckInDate:  booking.CheckInDate.Format("2006-01-02"),
		CheckOutDate: booking.CheckOutDate.Format("2006-01-02"),
		TotalAmount:  fmt.Sprintf("%.2f", booking.TotalAmount),
	})
}

// SendPaymentConfirmation mails the customer after a booking is paid.
func SendPaymentConfirmation(customer *customer_models.Customer, booking *booking_models.Booking,
	hotel *hotel_models.Hotel, payment *payment_models.Payment) error {

	subject := "Payment Confirmation - " + hotel.HotelName
	return sendEmail(customer.Email, subject, paymentConfirmationTemplate, paymentEmailData{
		CustomerName: customer.UserName,
		HotelName:    hotel.HotelName,
		BookingID:    booking.ID.String(),
		PaymentID:    payment.ID.String(),
		CheckInDate:  booking.CheckInDate.Format("2006-01-02"),
		CheckOutDate: booking.CheckOutDate.Format("2006-01-02"),
		TotalAmount:  fmt.Sprintf("%.2f", booking.TotalAmount),
		AmountPaid:   fmt.Sprintf("%.2f", payment.TotalAmount),
	})
}
