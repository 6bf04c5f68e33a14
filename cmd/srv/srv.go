package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/codehub/backend/config"
	"github.com/codehub/backend/internal/domain"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/api/openai"
	"github.com/codehub/backend/pkg/authenticator"
	"github.com/codehub/backend/pkg/logger"
	"github.com/codehub/backend/pkg/router"
	"github.com/codehub/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	repoRepo    repository.RepoRepository

	oauth2Services []authenticator.IOAuth2Service
	reviewEndpoint openai.IEndpoint

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	postDomain      domain.PostDomain
	repoDomain      domain.RepoDomain
	dashboardDomain domain.DashboardDomain
	searchDomain    domain.SearchDomain
	reviewDomain    domain.ReviewDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	s.configs = cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(s.configs.Env, s.configs.LogLevel)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var dialector gorm.Dialector
	switch s.configs.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(s.configs.Database.DSN)
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       s.configs.Database.DSN,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	default:
		panic(fmt.Sprintf("unsupported database driver %s", s.configs.Database.Driver))
	}

	logLevel := gormlogger.Warn
	if s.configs.Env != "production" {
		logLevel = gormlogger.Info
	}

	var err error
	s.db, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadEndpoint() {
	s.reviewEndpoint = openai.New(s.configs.Review)

	if cfg := s.configs.Auth.GitHub; cfg.Enabled() {
		s.oauth2Services = append(s.oauth2Services, authenticator.NewGitHubService(cfg))
	} else {
		s.logger.Warnf("GitHub OAuth is not configured")
	}

	if cfg := s.configs.Auth.Google; cfg.Enabled() {
		google, err := authenticator.NewGoogleService(s.ctx, cfg)
		if err != nil {
			panic(err)
		}
		s.oauth2Services = append(s.oauth2Services, google)
	} else {
		s.logger.Warnf("Google OAuth is not configured")
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followRepo = repository.NewFollowRepository()
	s.postRepo = repository.NewPostRepository()
	s.likeRepo = repository.NewLikeRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.repoRepo = repository.NewRepoRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.oauth2Services)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.followRepo, s.postRepo)
	s.postDomain = domain.NewPostDomain(s.userRepo, s.postRepo, s.likeRepo, s.commentRepo, s.followRepo)
	s.repoDomain = domain.NewRepoDomain(s.userRepo, s.repoRepo)
	s.dashboardDomain = domain.NewDashboardDomain(s.userRepo, s.postRepo, s.followRepo, s.likeRepo, s.repoRepo)
	s.searchDomain = domain.NewSearchDomain(s.userRepo, s.postRepo, s.repoRepo)
	s.reviewDomain = domain.NewReviewDomain(s.reviewEndpoint)
}
