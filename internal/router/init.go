package router

import (
	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/internal/container"
	pginfra "github.com/orryin/orryin-backend/internal/infrastructure/postgres"
	handlers "github.com/orryin/orryin-backend/internal/interface/http"
	"github.com/orryin/orryin-backend/internal/router/modules"
)

// Deps groups the repositories, services and handlers built at startup.
// Services are shared: the flow module reuses the same instances the
// feature modules use.
type Deps struct {
	Users     *handlers.UserHandler
	Kyc       *handlers.KycHandler
	Payments  *handlers.PaymentsHandler
	Brokerage *handlers.BrokerageHandler
	Flow      *handlers.FlowHandler
}

func buildDeps() Deps {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	accountRepo := pginfra.NewAccountRepository(pool)
	txRepo := pginfra.NewTransactionRepository(pool)
	kycRepo := pginfra.NewKycRepository(pool)
	brokerageRepo := pginfra.NewBrokerageRepository(pool)

	// Provider clients may be nil when credentials are missing; assign through
	// a typed check so the services see a nil interface, not a typed nil.
	var sumsubClient application.SumsubClient
	if c := container.GetSumsub(); c != nil {
		sumsubClient = c
	}
	var wiseClient application.WiseClient
	if c := container.GetWise(); c != nil {
		wiseClient = c
	}
	var notifier application.ReviewNotifier
	if p := container.GetRabbitPub(); p != nil {
		notifier = application.NewRabbitReviewNotifier(p)
	}

	userSvc := application.NewUserService(userRepo, logger)
	kycSvc := application.NewKycService(userRepo, kycRepo, sumsubClient, []byte(cfg.SumsubWebhookKey()), notifier, logger)
	paymentsSvc := application.NewPaymentsService(userRepo, accountRepo, txRepo, wiseClient, container.GetRedis(), cfg.FxRateCacheTTL, logger)
	brokerageSvc := application.NewBrokerageService(userRepo, brokerageRepo, container.GetDriveWealth(), logger)
	flowSvc := application.NewFlowService(userRepo, accountRepo, kycSvc, paymentsSvc, brokerageSvc, logger)

	return Deps{
		Users:     handlers.NewUserHandler(userSvc, logger),
		Kyc:       handlers.NewKycHandler(kycSvc, logger),
		Payments:  handlers.NewPaymentsHandler(paymentsSvc, logger),
		Brokerage: handlers.NewBrokerageHandler(brokerageSvc, logger),
		Flow:      handlers.NewFlowHandler(flowSvc, logger),
	}
}

// InitModules builds the dependency graph once and registers every feature
// module with the registry. Called once during startup.
func InitModules(r *Registry) {
	deps := buildDeps()

	r.Add(modules.NewUserModule(deps.Users))
	r.Add(modules.NewKycModule(deps.Kyc))
	r.Add(modules.NewPaymentsModule(deps.Payments))
	r.Add(modules.NewBrokerageModule(deps.Brokerage))
	r.Add(modules.NewFlowModule(deps.Flow))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
