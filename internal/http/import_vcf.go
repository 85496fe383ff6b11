package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Antho1426/vcf-parser/internal/database"
	"github.com/Antho1426/vcf-parser/internal/exporters"
	"github.com/Antho1426/vcf-parser/internal/vcf"
)

const (
	maxVCFFileSize = 50 * 1024 * 1024 // 50 MB
)

type VCFImportController struct {
	exporter exporters.ContactExporter
	registry *vcf.Registry
	db       *database.Database
}

func NewVCFImportController(exporter exporters.ContactExporter, registry *vcf.Registry, db *database.Database) *VCFImportController {
	return &VCFImportController{
		exporter: exporter,
		registry: registry,
		db:       db,
	}
}

type VCFImportResult struct {
	Success          bool     `json:"success"`
	Error            string   `json:"error,omitempty"`
	ContactsImported int      `json:"contacts_imported"`
	FieldsImported   int      `json:"fields_imported"`
	Errors           []string `json:"errors,omitempty"`
}

// Import accepts a multipart upload of a VCF export under "vcf_file" and
// saves the matching contacts. Optional "tags" and "op" form fields narrow
// the import the same way the CLI flags do.
func (c *VCFImportController) Import(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("vcf_file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, &VCFImportResult{
			Success: false,
			Error:   "VCF file not provided",
		})
		return
	}
	defer file.Close()

	if header.Size > maxVCFFileSize {
		ctx.JSON(http.StatusBadRequest, &VCFImportResult{
			Success: false,
			Error:   fmt.Sprintf("File too large (max %d MB)", maxVCFFileSize/(1024*1024)),
		})
		return
	}

	filter, err := parseFilter(ctx.PostForm("tags"), ctx.PostForm("op"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, &VCFImportResult{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	limitedReader := io.LimitReader(file, maxVCFFileSize+1)

	parser := vcf.NewParser(c.registry)
	store, err := parser.Parse(limitedReader, filter)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, &VCFImportResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to parse VCF file: %v", err),
		})
		return
	}

	if store.Len() == 0 {
		ctx.JSON(http.StatusOK, &VCFImportResult{
			Success: true,
			Errors:  []string{"No matching contacts found in the VCF file"},
		})
		return
	}

	contacts := exporters.ContactsFromStore(store)

	session, sessionErr := c.db.CreateImportSession(header.Filename)
	result, exportErr := c.exporter.Export(contacts)
	if sessionErr == nil {
		_ = c.db.CompleteImportSession(session, result.ContactsProcessed, result.ContactsFailed, exportErr)
	}

	if exportErr != nil {
		ctx.JSON(http.StatusInternalServerError, &VCFImportResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to export: %v", exportErr),
		})
		return
	}

	ctx.JSON(http.StatusOK, &VCFImportResult{
		Success:          true,
		ContactsImported: result.ContactsProcessed,
		FieldsImported:   result.FieldsProcessed,
	})
}

// ListSessions returns recent import sessions, newest first.
func (c *VCFImportController) ListSessions(ctx *gin.Context) {
	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	sessions, err := c.db.GetImportSessions(limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.IndentedJSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

func parseFilter(tagList, opValue string) (vcf.Filter, error) {
	op, err := vcf.ParseLogicOp(opValue)
	if err != nil {
		return vcf.Filter{}, err
	}

	var tags []string
	if tagList != "" {
		for _, tag := range strings.Split(tagList, ",") {
			if tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	return vcf.Filter{Tags: tags, Op: op}, nil
}
