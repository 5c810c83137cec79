package server

import (
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/report_reviewer/app/portal/internal/conf"
	"github.com/iWorld-y/report_reviewer/app/portal/internal/service"
	dm "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
)

// maxUploadBytes 附件上传的内存解析上限
const maxUploadBytes = 32 << 20

func NewHTTPServer(c *conf.Server, svc *service.ReviewService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	registerRoutes(srv, svc)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte("ok"))
	})

	return srv
}

func registerRoutes(srv *http.Server, svc *service.ReviewService) {
	r := srv.Route("/api/v1")

	r.POST("/attachments", func(ctx http.Context) error {
		req := ctx.Request()
		if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
			return err
		}
		file, header, err := req.FormFile("file")
		if err != nil {
			return err
		}
		defer file.Close()

		reply, err := svc.UploadAttachment(file, header)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, reply)
	})

	r.POST("/reports/analyze", func(ctx http.Context) error {
		var in dm.ReportInput
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		reply, err := svc.AnalyzeReport(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, reply)
	})

	r.GET("/analyses", func(ctx http.Context) error {
		page, _ := strconv.Atoi(ctx.Query().Get("page"))
		pageSize, _ := strconv.Atoi(ctx.Query().Get("page_size"))
		reply, err := svc.ListAnalyses(ctx, page, pageSize)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, reply)
	})

	r.GET("/analyses/{id}", func(ctx http.Context) error {
		id, err := strconv.Atoi(ctx.Vars().Get("id"))
		if err != nil {
			return err
		}
		reply, err := svc.GetAnalysis(ctx, id)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, reply)
	})
}
