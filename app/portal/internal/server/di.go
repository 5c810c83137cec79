package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/report_reviewer/app/portal/internal/biz"
	"github.com/iWorld-y/report_reviewer/app/portal/internal/data"
	"github.com/iWorld-y/report_reviewer/app/portal/internal/service"
)

// ProviderSet 是评审门户的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewReviewerEngine,

	// Data providers
	data.NewData,
	data.NewAnalysisRepo,

	// UseCase providers
	biz.NewAnalysisUseCase,

	// Service providers
	service.NewReviewService,
)
