package report

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/Zuo-Peng/chatlens/internal/analysis"
)

// WriteJSON writes the full snapshot as indented JSON.
func WriteJSON(w io.Writer, s *analysis.Snapshot) error {
	data, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
