package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/snake-api/internal/domain/entity"
	"github.com/yourusername/snake-api/internal/handler/dto"
	"github.com/yourusername/snake-api/pkg/logger"
)

var exportHeaders = []string{"Rank", "ID", "Player", "Score", "Level", "Play time (s)", "Created at"}

// ExportHandler выгружает лидерборд в CSV или Excel
type ExportHandler struct {
	scores *ScoreHandler
	log    *logger.Logger
}

// NewExportHandler создает обработчик экспорта поверх ScoreHandler
func NewExportHandler(scores *ScoreHandler, log *logger.Logger) *ExportHandler {
	return &ExportHandler{scores: scores, log: log}
}

// ExportScores экспортирует страницу лидерборда
// GET /api/v1/scores/export?format=csv|xlsx&limit=100&offset=0
func (h *ExportHandler) ExportScores(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.CodeInvalidParams, "invalid parameter format: must be csv or xlsx"))
		return
	}

	limit, offset, err := parsePagination(c)
	if err != nil {
		h.scores.handleScoreError(c, err)
		return
	}

	page, err := h.scores.scoreService.GetExportPage(c.Request.Context(), limit, offset)
	if err != nil {
		h.scores.handleScoreError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard_%s", time.Now().Format("2006-01-02"))
	firstRank := offset + 1

	// Файл собирается в памяти целиком: ошибка записи дает 500, а не обрезанный файл
	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = writeLeaderboardXLSX(&buf, page.Scores, firstRank)
	} else {
		err = writeLeaderboardCSV(&buf, page.Scores, firstRank)
	}
	if err != nil {
		h.log.Error("[ExportHandler] Ошибка формирования файла", err, zap.String("format", format))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.CodeInternal, "Failed to create export file"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.%s\"", filename, format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func exportRow(s entity.Score, rank int) []string {
	return []string{
		strconv.Itoa(rank),
		strconv.FormatInt(s.ID, 10),
		sanitizeForExcel(s.PlayerName),
		strconv.Itoa(s.Score),
		strconv.Itoa(s.Level),
		strconv.Itoa(s.PlayTime),
		s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// writeLeaderboardCSV пишет CSV с BOM, чтобы Excel правильно понял UTF-8
func writeLeaderboardCSV(w io.Writer, scores []entity.Score, firstRank int) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for i, s := range scores {
		if err := writer.Write(exportRow(s, firstRank+i)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeLeaderboardXLSX пишет Excel-файл через StreamWriter
func writeLeaderboardXLSX(w io.Writer, scores []entity.Score, firstRank int) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leaderboard"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		headers[i] = v
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, s := range scores {
		rowNum := i + 2 // 1 - заголовки
		row := []interface{}{
			firstRank + i,
			s.ID,
			sanitizeForExcel(s.PlayerName),
			s.Score,
			s.Level,
			s.PlayTime,
			s.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
			return fmt.Errorf("write row %d: %w", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return f.Write(w)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
