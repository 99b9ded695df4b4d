package parser_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	customerrors "synth911/errors"
	"synth911/models"
	"synth911/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = strings.Join(models.Columns, ",")

const validRow = `24-M000007,EMS,2024-01-02 03:04:05,2,1,3,NIGHT,TUE,D,LATE,CHEST PAIN,"5 Elm St",1,"Doe, Jane",E-911,"Roe, Rick",10,20,30,5,300,400,30,735,2024-01-02 03:04:15,2024-01-02 03:04:35,2024-01-02 03:04:40,2024-01-02 03:04:35,2024-01-02 03:09:40,2024-01-02 03:16:20,TRANSPORTED`

func TestParse(t *testing.T) {
	event := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := map[string]struct {
		input         string
		expectedCount int
		expectedError error
	}{
		"ValidInput_SingleLine": {
			input:         header + "\n" + validRow + "\n",
			expectedCount: 1,
		},
		"ValidInput_WithComments": {
			input:         "# exported table\n" + header + "\n# first call\n" + validRow + "\n" + validRow + "\n",
			expectedCount: 2,
		},
		"HeaderOnly": {
			input:         header + "\n",
			expectedCount: 0,
		},
		"EmptyInput": {
			input:         "",
			expectedError: customerrors.ErrEmptyRecord,
		},
		"InvalidHeader": {
			input:         strings.Replace(header, "agency", "agent", 1) + "\n" + validRow + "\n",
			expectedError: customerrors.ErrInvalidHeader,
		},
		"ShortHeader": {
			input:         "call_id,agency\n",
			expectedError: customerrors.ErrInvalidHeader,
		},
		"InvalidFieldCount": {
			input:         header + "\n24-L000001,LAW,2024-01-01 00:00:00\n",
			expectedError: customerrors.ErrInvalidFieldCount,
		},
		"InvalidTimestamp": {
			input:         header + "\n" + strings.Replace(validRow, "2024-01-02 03:04:05", "2024/01/02 03:04:05", 1) + "\n",
			expectedError: customerrors.ErrInvalidTimestamp,
		},
		"InvalidInteger": {
			input:         header + "\n" + strings.Replace(validRow, ",735,", ",seven,", 1) + "\n",
			expectedError: customerrors.ErrInvalidInteger,
		},
		"UnknownAgency": {
			input:         header + "\n" + strings.Replace(validRow, ",EMS,", ",COAST GUARD,", 1) + "\n",
			expectedError: customerrors.ErrUnknownAgency,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parser.Parse(strings.NewReader(tt.input))

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "Parse() error = %v, expectedError %v", err, tt.expectedError)

				var parseErr *customerrors.ParseError
				assert.True(t, errors.As(err, &parseErr))
				return
			}

			require.NoError(t, err)
			require.Len(t, got, tt.expectedCount)
			for _, r := range got {
				assert.Equal(t, "24-M000007", r.CallID)
				assert.Equal(t, models.AgencyEMS, r.Agency)
				assert.Equal(t, event, r.EventTime)
				assert.Equal(t, models.ShiftD, r.Shift)
				assert.Equal(t, "Doe, Jane", r.CallTaker)
				assert.Equal(t, 735, r.TotalTime)
				assert.Equal(t, event.Add(735*time.Second), r.CallClosed)
				assert.Equal(t, "TRANSPORTED", r.Disposition)
			}
		})
	}
}

func TestParse_ErrorLine(t *testing.T) {
	input := header + "\n" + validRow + "\n" + strings.Replace(validRow, ",10,20,", ",x,20,", 1) + "\n"

	_, err := parser.Parse(strings.NewReader(input))
	var parseErr *customerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Line)
	assert.Contains(t, parseErr.Error(), "queue_time")
}
