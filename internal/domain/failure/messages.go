package failure

// Display messages, in the product's UI language.
const (
	MsgInvalidInput       = "נא להזין סמל, מפתח API ומודול"
	MsgMissingKey         = "נא להזין מפתח API"
	MsgBadKeyFormat       = "פורמט מפתח API לא תקין. המפתח חייב להתחיל ב-sk-"
	MsgKeyExpired         = "פג תוקף המפתח, נא להזין אותו מחדש"
	MsgUnknownModule      = "המודול המבוקש אינו קיים"
	MsgSelectModule       = "נא לבחור מודול AI"
	MsgConnectionTest     = "בדיקת החיבור נכשלה"
	MsgWrongAdminCode     = "קוד אדמין שגוי"
	MsgAuthentication     = "מפתח API לא תקין"
	MsgQuotaExceeded      = "חרגת ממכסת הבקשות. הזן קוד אדמין להסרת המגבלה או שדרג את החשבון שלך."
	MsgSymbolNotFound     = "לא נמצאו נתונים עבור הסמל המבוקש"
	MsgNoUsablePrice      = "התקבל מחיר לא תקין עבור הסמל המבוקש"
	MsgNoUsableVolume     = "התקבל נפח מסחר לא תקין עבור הסמל המבוקש"
	MsgLocalRateLimited   = "נא המתן מספר שניות לפני ביצוע בקשה נוספת"
	MsgMarketDataLimit    = "ספק נתוני השוק הגביל את הבקשות, נסה שוב מאוחר יותר"
	MsgMalformedAnalysis  = "תשובת מודל ה-AI אינה במבנה הצפוי"
	MsgTransport          = "שגיאה בתקשורת עם הספק"
	MsgCredentialValidate = "שגיאה באימות המפתח"
)

// DefaultMessage returns the display message for kind.
func DefaultMessage(kind Kind) string {
	switch kind {
	case InvalidInput:
		return MsgInvalidInput
	case AuthenticationFailure:
		return MsgAuthentication
	case QuotaExceeded:
		return MsgQuotaExceeded
	case SymbolNotFound:
		return MsgSymbolNotFound
	case LocalRateLimited:
		return MsgLocalRateLimited
	case MalformedAnalysis:
		return MsgMalformedAnalysis
	default:
		return MsgTransport
	}
}
