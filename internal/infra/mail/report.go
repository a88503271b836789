package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
)

// FormatMoney renders a dollar amount with thousands separators,
// rounded to whole dollars ("1,253,125"). Negative values keep their
// sign so the NOI line can go below zero.
func FormatMoney(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, ",")
}

// ReportSubject carries both estimates the way the original report
// email did.
func ReportSubject(conservative, optimistic int64) string {
	return fmt.Sprintf("Your Post Office Property Valuation Report - $%s to $%s",
		FormatMoney(float64(conservative)), FormatMoney(float64(optimistic)))
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Your Property Valuation Report</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Inter', -apple-system, sans-serif; background-color: #F8FAFC;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color: #F8FAFC; padding: 40px 20px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color: #FFFFFF; border-radius: 12px; overflow: hidden;">
          <tr>
            <td style="background: linear-gradient(135deg, #004B87 0%, #003366 100%); padding: 40px 30px; text-align: center;">
              <h1 style="color: #FFFFFF; font-size: 32px; margin: 0 0 10px 0;">Your Property Valuation Report</h1>
              <p style="color: #E0E7EE; font-size: 16px; margin: 0;">Confidential Analysis for {{.FirstName}} {{.LastName}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 30px; border-bottom: 2px solid #E5E7EB;">
              <h2 style="color: #0D1B2A; font-size: 18px; margin: 0 0 10px 0;">Property Address</h2>
              <p style="color: #64748B; font-size: 16px; margin: 0;">{{.FormattedAddress}}</p>
            </td>
          </tr>
{{- if .StreetViewURL}}
          <tr>
            <td style="padding: 0 30px 30px 30px;">
              <img src="{{.StreetViewURL}}" alt="Property Street View" style="width: 100%; max-width: 600px; height: auto; border-radius: 8px; margin: 20px 0;" />
              <p style="color: #94A3B8; font-size: 12px; margin: 5px 0 0 0; font-style: italic;">Imagery &copy; Google. Street View provided for reference only.</p>
            </td>
          </tr>
{{- end}}
          <tr>
            <td style="padding: 30px; background-color: #F8FAFC;">
              <h2 style="color: #0D1B2A; font-size: 22px; margin: 0 0 20px 0; text-align: center;">Estimated Property Value</h2>
              <table width="100%" cellpadding="0" cellspacing="0">
                <tr>
                  <td width="48%" style="background-color: #FFFFFF; border: 2px solid #E0E7EE; border-radius: 8px; padding: 20px; text-align: center;">
                    <p style="color: #64748B; font-size: 14px; margin: 0 0 10px 0; text-transform: uppercase;">Conservative Estimate</p>
                    <p style="color: #004B87; font-size: 36px; font-weight: 700; margin: 0 0 5px 0;">${{.Conservative}}</p>
                    <p style="color: #94A3B8; font-size: 12px; margin: 0;">12% cap rate</p>
                  </td>
                  <td width="4%"></td>
                  <td width="48%" style="background-color: #FFFFFF; border: 2px solid #004B87; border-radius: 8px; padding: 20px; text-align: center;">
                    <p style="color: #004B87; font-size: 14px; margin: 0 0 10px 0; text-transform: uppercase;">Optimistic Estimate</p>
                    <p style="color: #004B87; font-size: 36px; font-weight: 700; margin: 0 0 5px 0;">${{.Optimistic}}</p>
                    <p style="color: #94A3B8; font-size: 12px; margin: 0;">8% cap rate</p>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          <tr>
            <td style="padding: 30px;">
              <h3 style="color: #0D1B2A; font-size: 18px; margin: 0 0 15px 0;">Valuation Breakdown</h3>
              <table width="100%" cellpadding="8" cellspacing="0" style="border-collapse: collapse;">
                <tr style="border-bottom: 1px solid #E5E7EB;">
                  <td style="color: #64748B; font-size: 14px;">Annual Rent</td>
                  <td style="color: #0D1B2A; font-size: 14px; font-weight: 600; text-align: right;">${{.AnnualRent}}</td>
                </tr>
                <tr style="border-bottom: 1px solid #E5E7EB;">
                  <td style="color: #64748B; font-size: 14px;">Property Taxes{{if .TaxesReimbursed}} (Reimbursed){{end}}</td>
                  <td style="color: #0D1B2A; font-size: 14px; font-weight: 600; text-align: right;">{{if .TaxesReimbursed}}$0{{else}}${{.PropertyTaxes}}{{end}}</td>
                </tr>
                <tr style="border-bottom: 1px solid #E5E7EB;">
                  <td style="color: #64748B; font-size: 14px;">Insurance</td>
                  <td style="color: #0D1B2A; font-size: 14px; font-weight: 600; text-align: right;">${{.Insurance}}</td>
                </tr>
                <tr style="border-bottom: 1px solid #E5E7EB;">
                  <td style="color: #64748B; font-size: 14px;">Maintenance ({{.SquareFootage}} sq ft &times; $1.75)</td>
                  <td style="color: #0D1B2A; font-size: 14px; font-weight: 600; text-align: right;">${{.Maintenance}}</td>
                </tr>
                <tr>
                  <td style="color: #004B87; font-size: 16px; font-weight: 700;">Net Operating Income</td>
                  <td style="color: #004B87; font-size: 16px; font-weight: 700; text-align: right;">${{.NetIncome}}</td>
                </tr>
              </table>
            </td>
          </tr>
          <tr>
            <td style="padding: 30px; background-color: #F0F9FF; border-top: 2px solid #E5E7EB;">
              <h3 style="color: #0D1B2A; font-size: 18px; margin: 0 0 15px 0;">What Happens Next?</h3>
              <ul style="color: #475569; font-size: 14px; line-height: 1.8; margin: 0; padding-left: 20px;">
                <li>Our team will review your property details within 24-48 hours</li>
                <li>We'll connect you with qualified buyers from our nationwide network</li>
                <li>You'll receive a no-obligation cash offer with <strong>zero broker fees</strong></li>
                <li>Close in as few as 45 days with full transparency throughout</li>
              </ul>
            </td>
          </tr>
          <tr>
            <td style="padding: 30px; text-align: center;">
              <a href="{{.SiteBaseURL}}/contact" style="display: inline-block; background-color: #004B87; color: #FFFFFF; text-decoration: none; padding: 16px 32px; border-radius: 6px; font-size: 16px; font-weight: 600;">Contact Us for More Information</a>
            </td>
          </tr>
          <tr>
            <td style="padding: 30px; background-color: #F8FAFC; border-top: 2px solid #E5E7EB; text-align: center;">
              <p style="color: #94A3B8; font-size: 12px; margin: 0 0 10px 0;">This valuation is an estimate only and is not a formal appraisal.</p>
              <p style="color: #94A3B8; font-size: 12px; margin: 0 0 10px 0;">We own multiple post offices and charge zero broker fees.</p>
              <p style="color: #94A3B8; font-size: 12px; margin: 0;">&copy; {{.Year}} Sell My Post Office. All rights reserved.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))

func RenderReport(data ReportData) (string, error) {
	var body bytes.Buffer
	if err := reportTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render report template: %w", err)
	}
	return body.String(), nil
}
