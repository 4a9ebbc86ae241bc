package service

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/snake-api/internal/pkg/errors"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func validInput() ScoreInput {
	return ScoreInput{
		PlayerName: strPtr("Bo"),
		Score:      intPtr(150),
		Level:      intPtr(3),
		PlayTime:   intPtr(120),
	}
}

func TestValidateScoreInput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *ScoreInput)
		wantField string // пусто - вход корректен
	}{
		{name: "valid", mutate: func(in *ScoreInput) {}},
		{name: "name with surrounding spaces", mutate: func(in *ScoreInput) { in.PlayerName = strPtr("  Alice  ") }},
		{name: "whitespace name", mutate: func(in *ScoreInput) { in.PlayerName = strPtr("   ") }, wantField: "player_name"},
		{name: "empty name", mutate: func(in *ScoreInput) { in.PlayerName = strPtr("") }, wantField: "player_name"},
		{name: "missing name", mutate: func(in *ScoreInput) { in.PlayerName = nil }, wantField: "player_name"},
		{name: "50 chars", mutate: func(in *ScoreInput) { in.PlayerName = strPtr(strings.Repeat("a", 50)) }},
		{name: "51 chars", mutate: func(in *ScoreInput) { in.PlayerName = strPtr(strings.Repeat("a", 51)) }, wantField: "player_name"},
		{name: "50 chars after trim", mutate: func(in *ScoreInput) { in.PlayerName = strPtr("  " + strings.Repeat("a", 50) + "  ") }},
		{name: "50 multibyte chars", mutate: func(in *ScoreInput) { in.PlayerName = strPtr(strings.Repeat("蛇", 50)) }},
		{name: "score -1", mutate: func(in *ScoreInput) { in.Score = intPtr(-1) }, wantField: "score"},
		{name: "score 0", mutate: func(in *ScoreInput) { in.Score = intPtr(0) }},
		{name: "missing score", mutate: func(in *ScoreInput) { in.Score = nil }, wantField: "score"},
		{name: "level 0", mutate: func(in *ScoreInput) { in.Level = intPtr(0) }, wantField: "level"},
		{name: "level 6", mutate: func(in *ScoreInput) { in.Level = intPtr(6) }, wantField: "level"},
		{name: "level 1", mutate: func(in *ScoreInput) { in.Level = intPtr(1) }},
		{name: "level 5", mutate: func(in *ScoreInput) { in.Level = intPtr(5) }},
		{name: "missing level", mutate: func(in *ScoreInput) { in.Level = nil }, wantField: "level"},
		{name: "play_time -1", mutate: func(in *ScoreInput) { in.PlayTime = intPtr(-1) }, wantField: "play_time"},
		{name: "play_time 0", mutate: func(in *ScoreInput) { in.PlayTime = intPtr(0) }},
		{name: "missing play_time", mutate: func(in *ScoreInput) { in.PlayTime = nil }, wantField: "play_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			fields := ValidateScoreInput(in)

			if tt.wantField == "" {
				assert.Empty(t, fields)
				return
			}
			require.Len(t, fields, 1)
			assert.Equal(t, tt.wantField, fields[0].Field)
			assert.NotEmpty(t, fields[0].Reason)
		})
	}
}

func TestValidateScoreInput_ShortCircuitsInOrder(t *testing.T) {
	// Все поля невалидны - сообщается только первое по порядку
	in := ScoreInput{
		PlayerName: strPtr(" "),
		Score:      intPtr(-5),
		Level:      intPtr(9),
		PlayTime:   intPtr(-1),
	}
	fields := ValidateScoreInput(in)
	require.Len(t, fields, 1)
	assert.Equal(t, "player_name", fields[0].Field)

	in.PlayerName = strPtr("ok")
	assert.Equal(t, "score", ValidateScoreInput(in)[0].Field)

	in.Score = intPtr(0)
	assert.Equal(t, "level", ValidateScoreInput(in)[0].Field)

	in.Level = intPtr(2)
	assert.Equal(t, "play_time", ValidateScoreInput(in)[0].Field)
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		offset    int
		wantParam string
	}{
		{name: "defaults", limit: 10, offset: 0},
		{name: "min limit", limit: 1, offset: 0},
		{name: "max limit", limit: 100, offset: 5},
		{name: "limit 0", limit: 0, offset: 0, wantParam: "limit"},
		{name: "limit 101", limit: 101, offset: 0, wantParam: "limit"},
		{name: "offset -1", limit: 10, offset: -1, wantParam: "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePagination(tt.limit, tt.offset, MaxLimit)
			if tt.wantParam == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrInvalidParams)
			var paramErr *apperrors.ParamError
			require.ErrorAs(t, err, &paramErr)
			assert.Equal(t, tt.wantParam, paramErr.Param)
		})
	}
}

func TestPageNumber(t *testing.T) {
	assert.Equal(t, 1, PageNumber(10, 0))
	assert.Equal(t, 1, PageNumber(10, 9))
	assert.Equal(t, 2, PageNumber(2, 2))
	assert.Equal(t, 3, PageNumber(2, 5))
	assert.Equal(t, 1, PageNumber(0, 50), "limit 0 не должен приводить к делению на ноль")
}

func TestScoreValidationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("negative score is rejected", prop.ForAll(
		func(score int) bool {
			in := validInput()
			in.Score = &score
			fields := ValidateScoreInput(in)
			return len(fields) == 1 && fields[0].Field == "score"
		},
		gen.IntRange(-1<<30, -1),
	))

	properties.Property("non-negative score and play_time are accepted", prop.ForAll(
		func(score, playTime int) bool {
			in := validInput()
			in.Score = &score
			in.PlayTime = &playTime
			return len(ValidateScoreInput(in)) == 0
		},
		gen.IntRange(0, 1<<30),
		gen.IntRange(0, 1<<30),
	))

	properties.Property("level is valid iff 1..5", prop.ForAll(
		func(level int) bool {
			in := validInput()
			in.Level = &level
			ok := len(ValidateScoreInput(in)) == 0
			return ok == (level >= 1 && level <= 5)
		},
		gen.IntRange(-20, 20),
	))

	properties.Property("names are judged after trimming", prop.ForAll(
		func(name string, pad int) bool {
			padded := strings.Repeat(" ", pad) + name + strings.Repeat(" ", pad)
			in := validInput()
			in.PlayerName = &padded
			ok := len(ValidateScoreInput(in)) == 0
			return ok == (len(name) >= 1 && len(name) <= 50)
		},
		gen.AlphaString(),
		gen.IntRange(0, 5),
	))

	properties.Property("page number matches offset window", prop.ForAll(
		func(limit, offset int) bool {
			page := PageNumber(limit, offset)
			return (page-1)*limit <= offset && offset < page*limit
		},
		gen.IntRange(1, MaxLimit),
		gen.IntRange(0, 100000),
	))

	properties.TestingRun(t)
}
