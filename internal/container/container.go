package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/config"
	"github.com/orryin/orryin-backend/internal/integration/drivewealth"
	"github.com/orryin/orryin-backend/internal/integration/sumsub"
	"github.com/orryin/orryin-backend/internal/integration/wise"
	"github.com/orryin/orryin-backend/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire from these singletons. Provider clients may be
// nil when their credentials are missing; services translate that into a
// config error per request instead of failing startup.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	sumsubClient      *sumsub.Client
	wiseClient        *wise.Client
	driveWealthClient drivewealth.Client

	rabbitPub *helpers.RabbitPublisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }

func SetSumsub(c *sumsub.Client)          { sumsubClient = c }
func GetSumsub() *sumsub.Client           { return sumsubClient }
func SetWise(c *wise.Client)              { wiseClient = c }
func GetWise() *wise.Client               { return wiseClient }
func SetDriveWealth(c drivewealth.Client) { driveWealthClient = c }
func GetDriveWealth() drivewealth.Client  { return driveWealthClient }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
