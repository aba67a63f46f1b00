package main

import (
	"context"
	"log"
	"time"

	"soko/internal/config"
	"soko/internal/domain/model"
	"soko/internal/handler"
	"soko/internal/infra/db"
	"soko/internal/infra/events"
	infraRepo "soko/internal/infra/repository"
	"soko/internal/repository"
	"soko/internal/server"
	"soko/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(subjectID string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Seller{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	sellerRepo := infraRepo.NewSellerGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: 24 * time.Hour}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	simulator := &usecase.DelayPaymentSimulator{
		MpesaRequestDelay: cfg.MpesaRequestDelay,
		MpesaConfirmDelay: cfg.MpesaConfirmDelay,
		CardDelay:         cfg.CardDelay,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(sellerRepo, issuer, idGen, clock)
	productUC := usecase.NewProductUsecase(productRepo, sellerRepo, idGen, clock)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, idGen)
	checkoutUC := usecase.NewCheckoutUsecase(
		txManager, cartRepo, cartItemRepo,
		simulator, publisher, idGen, clock,
		cfg.ShippingRate, cfg.TaxRatePercent,
	)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo)
	sellerOrderUC := usecase.NewSellerOrderUsecase(txManager, publisher)
	sellerUC := usecase.NewSellerUsecase(sellerRepo, productRepo)

	//開発用の出品者を用意しておく（空のときだけ）
	if err := seedSellers(context.Background(), sellerRepo, idGen); err != nil {
		log.Printf("seed skipped: %v", err)
	}

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Product:  handler.NewProductHandler(productUC, cfg.UploadDir),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
		Order:    handler.NewOrderHandler(orderUC, sellerOrderUC),
		Seller:   handler.NewSellerHandler(sellerUC),
	}

	//Server起動
	e := server.New(cfg, h)
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func seedSellers(ctx context.Context, sellers repository.SellerRepository, idGen usecase.IDGenerator) error {
	existing, err := sellers.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seed := []model.Seller{
		{ID: idGen.NewID(), Name: "Mama Njeri's Farm Fresh", Description: "Fresh produce straight from the farm", Location: "Kiambu", Rating: 4.8, SubscriptionTier: model.TierPremium},
		{ID: idGen.NewID(), Name: "Jua Kali Crafts", Description: "Handmade goods from local artisans", Location: "Nairobi", Rating: 4.5, SubscriptionTier: model.TierStandard},
		{ID: idGen.NewID(), Name: "Soko Groceries", Description: "Everyday groceries at market prices", Location: "Nakuru", Rating: 4.2, SubscriptionTier: model.TierBasic},
	}
	for _, s := range seed {
		if err := sellers.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
