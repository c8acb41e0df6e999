package notify

import "fmt"

// VerificationEmail builds the email carrying the verify-email link.
func VerificationEmail(frontendURL, to, token string) Message {
	link := fmt.Sprintf("%s/verify-email/%s", frontendURL, token)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #4F46E5;">Welcome to DUK!</h1>
  <p>Thank you for signing up. Please verify your email address to get started.</p>
  <p><a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Verify Email Address</a></p>
  <p style="color: #6B7280; font-size: 14px;">Or copy and paste this link into your browser:</p>
  <p style="color: #4F46E5; font-size: 14px; word-break: break-all;">%s</p>
  <p style="color: #6B7280; font-size: 14px;">This link will expire in 15 minutes. If you didn't create an account, you can safely ignore this email.</p>
</div>`, link, link)
	return Message{To: to, Subject: "Welcome to DUK - Verify Your Email", HTML: html}
}

// ResetEmail builds the password-reset link email.
func ResetEmail(frontendURL, to, token string) Message {
	link := fmt.Sprintf("%s/reset-password/%s", frontendURL, token)
	html := fmt.Sprintf(`<h1>Password Reset</h1>
<p>You requested a password reset. Click the link below to reset your password:</p>
<a href="%s">%s</a>
<p>This link will expire in 1 hour.</p>
<p>If you didn't request this, you can safely ignore this email.</p>`, link, link)
	return Message{To: to, Subject: "Password Reset Request", HTML: html}
}
