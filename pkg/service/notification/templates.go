package notification

import (
	"fmt"

	domainnotif "github.com/mazadksa/mazad/pkg/domain/notification"
	"github.com/mazadksa/mazad/pkg/dto"
)

// emailTemplate renders the bilingual HTML body for a notification
// type. Types without a dedicated template use the default layout.
func emailTemplate(typ, title, message string, u *dto.UserRead) (subject, html string) {
	switch typ {
	case domainnotif.TypeWelcome:
		subject = "أهلاً بك في مزاد — Welcome to Mazad"
		html = wrap(
			fmt.Sprintf("أهلاً %s! حسابك جاهز ويمكنك الآن المزايدة.", u.FullName),
			fmt.Sprintf("Welcome %s! Your account is ready and you can start bidding.", u.FullName),
		)
	case domainnotif.TypeBid:
		subject = "تم تسجيل مزايدتك — Your bid was placed"
		html = wrap(
			"تم تسجيل مزايدتك بنجاح. "+message,
			"Your bid was placed successfully. "+message,
		)
	case domainnotif.TypeAuctionEnd:
		subject = "انتهى المزاد — Auction ended"
		html = wrap(
			"انتهى أحد المزادات التي تتابعها. "+message,
			"An auction you follow has ended. "+message,
		)
	case domainnotif.TypeWin:
		subject = "مبروك! لقد فزت — Congratulations, you won"
		html = wrap(
			"مبروك! مزايدتك هي الفائزة. "+message,
			"Congratulations! Your bid won the auction. "+message,
		)
	default:
		subject = title
		html = wrap(message, message)
	}
	return subject, html
}

// wrap lays out the Arabic (RTL) and English blocks with the operator
// contact footer.
func wrap(arabic, english string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Tahoma, Arial, sans-serif; background:#f7f7f7; padding:24px;">
  <div style="max-width:560px;margin:0 auto;background:#fff;border-radius:8px;padding:24px;">
    <div dir="rtl" style="text-align:right;font-size:15px;color:#1a1a1a;">%s</div>
    <hr style="border:none;border-top:1px solid #eee;margin:16px 0;">
    <div dir="ltr" style="text-align:left;font-size:14px;color:#444;">%s</div>
    <hr style="border:none;border-top:1px solid #eee;margin:16px 0;">
    <div style="font-size:12px;color:#888;">
      %s &middot; %s &middot; %s
    </div>
  </div>
</body>
</html>`, arabic, english, OperatorContact.Email, OperatorContact.Phone, OperatorContact.Address)
}

func contactOperatorBody(name, email, subject, message string) string {
	return wrap(
		fmt.Sprintf("رسالة جديدة من %s (%s): %s — %s", name, email, subject, message),
		fmt.Sprintf("New contact message from %s (%s): %s — %s", name, email, subject, message),
	)
}

func contactAutoReplyBody(name string) string {
	return wrap(
		fmt.Sprintf("شكراً %s، استلمنا رسالتك وسنرد خلال يوم عمل.", name),
		fmt.Sprintf("Thank you %s, we received your message and will reply within one business day.", name),
	)
}
