package di

import (
	"context"
	"log"

	"eco3/configs"
	"eco3/internal/auth"
	"eco3/internal/comments"
	"eco3/internal/events"
	"eco3/internal/likes"
	"eco3/internal/media"
	"eco3/internal/notifications"
	"eco3/internal/posts"
	"eco3/internal/storage/s3"
	"eco3/internal/users"
	"eco3/pkg/db"
	"eco3/pkg/jwt"
	"eco3/pkg/kafka"
	"eco3/pkg/redisx"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Tokens *jwt.JWT

	UserRepo      users.Repository
	Notifications notifications.Service

	AuthHandler         *auth.Handler
	UserHandler         *users.Handler
	PostHandler         *posts.Handler
	CommentHandler      *comments.Handler
	LikeHandler         *likes.Handler
	NotificationHandler *notifications.Handler
	MediaHandler        *media.Handler
	SSEHandler          *events.SSEHandler

	Board       events.Board
	KafkaWriter *kafka.Writer
}

func BuildContainer(cfg *configs.Config) *Container {
	dbConn := db.NewDb(cfg)
	rdb := redisx.NewClient(cfg)
	tokens := jwt.NewJWT(cfg.JWTSecret)

	var publisher events.Publisher = events.NopPublisher{}
	var kWriter *kafka.Writer
	if cfg.KafkaBrokerURL != "" {
		kWriter = kafka.NewWriter(cfg.KafkaBrokerURL, cfg.KafkaTopic)
		publisher = events.NewKafkaPublisher(kWriter)
	}

	userRepo := users.NewRepository(dbConn.DB)
	userService := users.NewService(userRepo)

	authService := auth.NewService(userService, tokens)

	postRepo := posts.NewRepository(dbConn.DB)
	postService := posts.NewService(postRepo, userRepo, publisher)

	commentRepo := comments.NewRepository(dbConn.DB)
	commentService := comments.NewService(commentRepo, postRepo)

	likeRepo := likes.NewRepository(dbConn.DB)
	likeService := likes.NewService(likeRepo, postRepo, publisher)

	notifRepo := notifications.NewRedisRepository(rdb)
	notifService := notifications.NewService(notifRepo)

	c := &Container{
		DB:     dbConn.DB,
		Redis:  rdb,
		Tokens: tokens,

		UserRepo:      userRepo,
		Notifications: notifService,

		AuthHandler:         auth.NewHandler(authService, userService),
		UserHandler:         users.NewHandler(userService),
		PostHandler:         posts.NewHandler(postService),
		CommentHandler:      comments.NewHandler(commentService),
		LikeHandler:         likes.NewHandler(likeService),
		NotificationHandler: notifications.NewHandler(notifService),
		SSEHandler:          events.NewSSEHandler(events.NewRedisStream(rdb)),

		Board:       events.NewRedisBoard(rdb),
		KafkaWriter: kWriter,
	}

	if cfg.S3Endpoint != "" {
		store, err := s3.New(s3.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("s3 ensure bucket: %v", err)
		}
		c.MediaHandler = media.NewHandler(media.NewService(store))
	}

	return c
}
