package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}

	InternalConfig struct {
		App     App
		JWT     JWT
		Billing Billing
	}

	App struct {
		Name                       string
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
		RabbitMQEventQueue         string
	}

	JWT struct {
		Secret string
	}

	Billing struct {
		EvidenceBucketName         string
		EvidenceMaxUploadSizeInMB  int64
		EvidenceUrlExpiryInMinutes int
		RecentCashierPaymentsLimit int
	}
)
