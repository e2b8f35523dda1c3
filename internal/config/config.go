package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	// Public URL of the storefront; checkout success/cancel
	// redirects are built from it.
	AppURL      string `env:"APP_URL,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// Shared secret for the internal email-dispatch endpoints.
	ServiceKey string `env:"SERVICE_KEY,required"`

	Stripe Stripe `envPrefix:"STRIPE_"`
	Resend Resend `envPrefix:"RESEND_"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY,required"`
	WebhookSecret string `env:"WEBHOOK_SECRET,required"`
}

type Resend struct {
	APIKey      string `env:"API_KEY,required"`
	BaseApiURL  string `env:"BASE_API_URL" envDefault:"https://api.resend.com"`
	FromAddress string `env:"FROM_ADDRESS" envDefault:"Lord Smith Lamps <orders@lordsmithlamps.com>"`
	// Contact-form submissions are relayed here.
	ContactInbox string `env:"CONTACT_INBOX" envDefault:"hello@lordsmithlamps.com"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
