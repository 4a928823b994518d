package service

import (
	"bytes"
	"text/template"
)

const (
	couponSubject   = "Your Shopify order - coupon"
	thankYouSubject = "Your Shopify order - thank you"
)

var couponTpl = template.Must(template.New("coupon").Parse(
	"Hi {{.FirstName}},\n\n" +
		"Thank you for your order! Here's a 15% coupon code to use for your next order: {{.CouponCode}}\n\n" +
		"Best,\nShop Owner",
))

var thankYouTpl = template.Must(template.New("thankyou").Parse(
	"Hi {{.FirstName}},\n\n" +
		"Thank you for your order! We're getting it ready for shipping it to you.\n\n" +
		"Best,\nShop Owner",
))

type emailData struct {
	FirstName  string
	CouponCode string
}

func buildCouponEmail(firstName, couponCode string) (subject, body string) {
	var buf bytes.Buffer
	_ = couponTpl.Execute(&buf, emailData{FirstName: firstName, CouponCode: couponCode})
	return couponSubject, buf.String()
}

func buildThankYouEmail(firstName string) (subject, body string) {
	var buf bytes.Buffer
	_ = thankYouTpl.Execute(&buf, emailData{FirstName: firstName})
	return thankYouSubject, buf.String()
}
