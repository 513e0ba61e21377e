package util

import "github.com/mxcd/go-config/config"

func InitConfig() error {
	err := config.LoadConfig([]config.Value{
		// version info
		config.String("DEPLOYMENT_IMAGE_TAG").NotEmpty().Default("development"),

		// logging config
		config.String("LOG_LEVEL").NotEmpty().Default("info"),

		// server config
		config.Bool("DEV").Default(false),
		config.Int("PORT").Default(8080),

		// card source selection: "local", "bucket" or "remote"
		config.String("CARD_SOURCE").NotEmpty().Default("local"),

		// local variant
		config.String("CARD_DIR").NotEmpty().Default("./cards"),

		// name served by the legacy /tap endpoint
		config.String("DEFAULT_CARD").NotEmpty().Default("card"),

		// when true, /tap redirects to /tap/{DEFAULT_CARD} instead of streaming
		config.Bool("TAP_REDIRECT").Default(false),

		// external base URL, used for QR code generation
		config.String("BASE_URL").NotEmpty().Default("http://localhost:8080"),

		// bucket variant — intentionally no NotEmpty: a missing storage
		// endpoint degrades card endpoints to configuration errors at
		// request time rather than refusing to start
		config.String("S3_ENDPOINT").Default(""),
		config.String("S3_ACCESS_KEY").Default(""),
		config.String("S3_SECRET_KEY").Default(""),
		config.String("S3_BUCKET").Default(""),
		config.Bool("S3_PUBLIC_BUCKET").Default(false),
		config.Bool("S3_USE_SSL").Default(true),

		// remote variant
		config.String("REMOTE_BASE_URL").Default(""),
	})
	return err
}
