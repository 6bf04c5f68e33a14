package main

import (
	"net/http"

	"github.com/codehub/backend/internal/middleware"
	"github.com/codehub/backend/migration"
	"github.com/codehub/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: middleware.AllowCors(s.configs.ApiServer).Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	s.logger.Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Public API.
	publicRouter := s.router.Branch()
	publicRouter.After(middleware.HandleSetAccessToken())
	publicRouter.After(middleware.HandleSaveSession())
	publicRouter.After(middleware.HandleRedirect())
	{
		router.POST(publicRouter, "/register", s.authDomain.Register)
		router.POST(publicRouter, "/login", s.authDomain.Login)
		router.GET(publicRouter, "/login/:provider", s.authDomain.OAuth2Login)
		router.GET(publicRouter, "/authorize/:provider", s.authDomain.OAuth2Callback)
	}

	// These following APIs need an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier(s.userRepo).Middleware())
	{
		router.GET(authRouter, "/dashboard", s.dashboardDomain.Get)
		router.GET(authRouter, "/feed", s.postDomain.GetFeed)
		router.POST(authRouter, "/post", s.postDomain.Create)
		router.POST(authRouter, "/like/:id", s.postDomain.ToggleLike)
		router.POST(authRouter, "/comment/:id", s.postDomain.AddComment)

		router.GET(authRouter, "/repositories", s.repoDomain.GetMyList)
		router.POST(authRouter, "/repository/create", s.repoDomain.Create)

		router.GET(authRouter, "/search", s.searchDomain.Search)

		router.GET(authRouter, "/user/:id", s.userDomain.GetProfile)
		router.POST(authRouter, "/follow/:id", s.userDomain.Follow)
		router.POST(authRouter, "/unfollow/:id", s.userDomain.Unfollow)

		router.POST(authRouter, "/suggest_code", s.reviewDomain.SuggestCode)
	}
}
