// Package server is the HTTP intake and presentation layer: multipart PDF
// uploads in, an XLSX download or a JSON preview out. All extraction logic
// lives behind the pipeline.
package server

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/invoicekit/invoice-summary/constants"
	"github.com/invoicekit/invoice-summary/internal/common"
	"github.com/invoicekit/invoice-summary/internal/export"
	"github.com/invoicekit/invoice-summary/internal/extract"
	"github.com/invoicekit/invoice-summary/internal/pipeline"
)

// uploadField is the multipart form field carrying the invoice PDFs.
const uploadField = "files"

type Server struct {
	proc   *pipeline.Processor
	export *export.Service
	cfg    common.UploadConfig
	logger *slog.Logger
}

func New(proc *pipeline.Processor, exp *export.Service, cfg common.UploadConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{proc: proc, export: exp, cfg: cfg, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = s.cfg.MaxUploadMB << 20

	r.GET("/", s.index)
	r.GET("/healthz", s.healthz)
	r.POST("/extract", s.extract)
	r.POST("/preview", s.preview)
	return r
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

// extract runs the pipeline over the uploaded PDFs and responds with the
// workbook as an attachment download.
func (s *Server) extract(c *gin.Context) {
	docs, closeAll, err := s.documents(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer closeAll()

	rows, sum, err := s.proc.Process(c.Request.Context(), docs)
	if err != nil {
		s.logger.Error("server.extract.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed"})
		return
	}
	xlsx, err := s.export.BuildWorkbook(rows)
	if err != nil {
		s.logger.Error("server.export.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Header("X-Invoice-Documents", strconv.Itoa(sum.Documents))
	c.Header("X-Invoice-Rows", strconv.Itoa(sum.Rows))
	c.Data(http.StatusOK, export.ContentType, xlsx)
}

// preview runs the same pipeline but responds with JSON rows for the
// in-browser preview table.
func (s *Server) preview(c *gin.Context) {
	docs, closeAll, err := s.documents(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer closeAll()

	rows, sum, err := s.proc.Process(c.Request.Context(), docs)
	if err != nil {
		s.logger.Error("server.preview.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed"})
		return
	}

	records := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Map())
	}
	c.JSON(http.StatusOK, gin.H{
		"columns": extract.Columns,
		"rows":    records,
		"summary": sum,
	})
}

// documents validates the multipart upload and opens each file for the
// pipeline. The returned closer releases every opened file.
func (s *Server) documents(c *gin.Context) ([]pipeline.Document, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, common.WrapError(err, "read multipart form")
	}
	files := form.File[uploadField]
	if len(files) == 0 {
		return nil, nil, common.NewAppError("NO_FILES", "at least one file is required", common.ErrInvalidInput)
	}
	if s.cfg.MaxFiles > 0 && len(files) > s.cfg.MaxFiles {
		return nil, nil, common.NewAppError("TOO_MANY_FILES",
			fmt.Sprintf("at most %d files per request", s.cfg.MaxFiles), common.ErrInvalidInput)
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	docs := make([]pipeline.Document, 0, len(files))
	for _, fh := range files {
		if !constants.IsAllowedExt(filepath.Ext(fh.Filename)) {
			closeAll()
			return nil, nil, common.NewAppError("UNSUPPORTED_FILE",
				fmt.Sprintf("%s: only PDF uploads are supported", fh.Filename), common.ErrUnsupportedFile)
		}
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, common.WrapError(err, "open upload")
		}
		opened = append(opened, f)
		docs = append(docs, pipeline.Document{Name: fh.Filename, Reader: f, Size: fh.Size})
	}
	return docs, closeAll, nil
}
