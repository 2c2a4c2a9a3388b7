package runtime

import (
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/pkg/db"
	"backend/insurance-platform/app/pkg/notifier"
	"backend/insurance-platform/app/pkg/redis"
)

// Clients groups the outbound integrations managers call.
type Clients struct {
	Notifier notifier.Notifier
}

// Resource is everything a binary shares between its repositories, managers
// and services. SqsClient is nil when no claim event queue is configured.
type Resource struct {
	Config     config.ApplicationConfig
	Logger     *zap.Logger
	DB         *db.DB
	Redis      redis.Redis
	HttpClient *resty.Client
	SqsClient  *sqs.Client
	Clients    Clients
}
