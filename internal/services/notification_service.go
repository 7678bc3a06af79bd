// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"

	"gorm.io/gorm"

	"github.com/nexura/storefront/internal/config"
	"github.com/nexura/storefront/internal/models"
)

// NotificationService writes outbound email into the mail table. Delivery
// is someone else's job; enqueue failures never fail the triggering action.
type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db:  db,
		cfg: cfg,
	}
}

func (s *NotificationService) EnqueueOrderConfirmation(user *models.User, order *models.Order) error {
	tmpl := s.getEmailTemplate("order_confirmation")

	data := map[string]interface{}{
		"Name":       user.Name,
		"OrderID":    order.OrderID,
		"Items":      order.Items,
		"Subtotal":   fmt.Sprintf("%.2f", order.Subtotal),
		"Discount":   fmt.Sprintf("%.2f", order.Discount),
		"Tax":        fmt.Sprintf("%.2f", order.Tax),
		"Total":      fmt.Sprintf("%.2f", order.Total),
		"OrdersURL":  fmt.Sprintf("%s/orders", s.cfg.Frontend.BaseURL),
		"StoreName":  s.cfg.Email.FromName,
	}

	subject := fmt.Sprintf("Order Confirmation - %s", order.OrderID)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.enqueue(user.Email, subject, body)
}

func (s *NotificationService) EnqueueOrderStatusUpdate(user *models.User, order *models.Order) error {
	tmpl := s.getEmailTemplate("order_status")

	data := map[string]interface{}{
		"Name":      user.Name,
		"OrderID":   order.OrderID,
		"Status":    order.Status,
		"OrdersURL": fmt.Sprintf("%s/orders", s.cfg.Frontend.BaseURL),
		"StoreName": s.cfg.Email.FromName,
	}

	subject := fmt.Sprintf("Order %s - %s", order.OrderID, order.Status)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.enqueue(user.Email, subject, body)
}

// Helper methods
func (s *NotificationService) enqueue(to, subject, body string) error {
	msg := &models.MailMessage{
		To:       to,
		Subject:  subject,
		HTMLBody: body,
	}

	if err := s.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to enqueue mail: %w", err)
	}

	return nil
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"order_confirmation": {
			Subject: "Order Confirmation",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thanks for your order, {{.Name}}!</h2>
	<p>Your order <strong>{{.OrderID}}</strong> has been placed.</p>
	<table>
		{{range .Items}}
		<tr>
			<td>{{.Product.Name}}</td>
			<td>{{.Size}}</td>
			<td>x{{.Quantity}}</td>
		</tr>
		{{end}}
	</table>
	<p>Subtotal: &#8377;{{.Subtotal}}<br>
	Discount: &#8377;{{.Discount}}<br>
	Tax: &#8377;{{.Tax}}<br>
	<strong>Total: &#8377;{{.Total}}</strong></p>
	<a href="{{.OrdersURL}}">View your orders</a>
	<p>Best regards,<br>{{.StoreName}} Team</p>
</body>
</html>`,
		},
		"order_status": {
			Subject: "Order Status Update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your order <strong>{{.OrderID}}</strong> is now: <strong>{{.Status}}</strong></p>
	<a href="{{.OrdersURL}}">Track your order</a>
	<p>Best regards,<br>{{.StoreName}} Team</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
