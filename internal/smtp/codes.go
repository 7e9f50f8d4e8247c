package smtp

const (
	StatusServiceReady  = "220 Welcome to the CCTV SMTP server"
	StatusConnClosed    = "221 OK"
	StatusAuthSuccess   = "235 Authentication successful"
	StatusHello         = "250 Hello"
	StatusOK            = "250 OK"
	StatusMailAccepted  = "250 Message accepted"
	StatusAuthUsername  = "334 VXNlcm5hbWU6" // Base64 encoded "Username:"
	StatusAuthPassword  = "334 UGFzc3dvcmQ6" // Base64 encoded "Password:"
	StatusStartMailData = "354 End data with <CR><LF>.<CR><LF>"

	StatusBadCommand           = "500 Command unrecognised"
	StatusAuthRequired         = "530 Authentication required"
	StatusAuthenticationFailed = "535 Authentication credentials invalid"
	StatusParseFailed          = "550 Failed to parse email"
)
