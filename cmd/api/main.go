package main

import (
	"uniket/internal/config"
	"uniket/internal/domain/model"
	"uniket/internal/handler"
	"uniket/internal/infra/db"
	infraRepo "uniket/internal/infra/repository"
	"uniket/internal/middleware"
	"uniket/internal/notify"
	"uniket/internal/realtime"
	"uniket/internal/server"
	"uniket/internal/usecase"
	"uniket/internal/validator"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	//.envは無くても起動できる（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New("uniket")
	logger.SetLevel(log.INFO)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderTracking{},
		&model.OrderRating{},
		&model.Ticket{},
		&model.Notification{},
		&model.AdminAlert{},
		&model.Bid{},
		&model.Wallet{},
		&model.WalletTransaction{},
		&model.PickupPoint{},
		&model.Review{},
		&model.LoginAttempt{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	ticketRepo := infraRepo.NewTicketGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)
	alertRepo := infraRepo.NewAdminAlertGormRepository(gormDB)
	bidRepo := infraRepo.NewBidGormRepository(gormDB)
	walletRepo := infraRepo.NewWalletGormRepository(gormDB)
	walletTxRepo := infraRepo.NewWalletTransactionGormRepository(gormDB)
	attemptRepo := infraRepo.NewLoginAttemptGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//通知sinkとリアルタイム配信
	sink := notify.NewDBSink(notificationRepo, alertRepo, logger)
	hub := realtime.NewHub()

	//Usecase生成
	fraudUC := usecase.NewFraudUsecase(cfg, orderRepo, bidRepo, attemptRepo, userRepo, sink)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, attemptRepo, fraudUC, validator.NewAuthValidator(userRepo))
	productUC := usecase.NewProductUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, sink, hub, fraudUC)
	ticketUC := usecase.NewTicketUsecase(ticketRepo, productRepo, userRepo, sink, cfg.StrictTicketReuseCheck)
	bidUC := usecase.NewBidUsecase(bidRepo, productRepo, sink, fraudUC)
	walletUC := usecase.NewWalletUsecase(txManager, walletRepo, walletTxRepo, sink)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, alertRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo, auditRepo, sink)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成
	responseCache := middleware.NewResponseCache(cfg.CacheTTL)
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC, responseCache),
		Order:        handler.NewOrderHandler(orderUC),
		Ticket:       handler.NewTicketHandler(ticketUC),
		Bid:          handler.NewBidHandler(bidUC),
		Wallet:       handler.NewWalletHandler(walletUC),
		Notification: handler.NewNotificationHandler(notificationUC),
		Review:       handler.NewReviewHandler(reviewUC),
		Fraud:        handler.NewFraudHandler(fraudUC),
		Audit:        handler.NewAuditHandler(auditUC),
		Realtime:     handler.NewRealtimeHandler(hub),
	}

	//Server起動
	e := server.New(cfg, handlers)

	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	if err := server.Start(e, addr); err != nil {
		logger.Fatal(err)
	}
}
