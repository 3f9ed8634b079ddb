package cycle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ValidationError 携带 Parse / ValidateForExport 返回的错误信息列表
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 1 {
		return e.Messages[0]
	}
	return fmt.Sprintf("%d validation errors: %s", len(e.Messages), strings.Join(e.Messages, "; "))
}

// ReadLines 读取行格式文本
// 兼容 CRLF，去除首尾空白，忽略空行
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spawn cycle lines: %w", err)
	}
	return lines, nil
}

// LoadFile 从文件读取行格式文本（不做校验）
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spawn cycle file %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read spawn cycle file %s: %w", path, err)
	}
	return lines, nil
}

// LoadCycle 读取、校验并构造文件中的 SpawnCycle
// 校验失败时返回 *ValidationError
func LoadCycle(path string) (*SpawnCycle, error) {
	lines, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c, errs := ParseAndBuild(lines)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid spawn cycle in %s: %w", path, &ValidationError{Messages: errs})
	}
	return c, nil
}

// WriteLines 将行写出，每行以 '\n' 结尾
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveCycle 校验并将 SpawnCycle 写入文件
func SaveCycle(path string, c *SpawnCycle) error {
	if errs := ValidateForExport(c); len(errs) > 0 {
		return &ValidationError{Messages: errs}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create spawn cycle file %s: %w", path, err)
	}
	if err := WriteLines(f, Serialize(c)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write spawn cycle file %s: %w", path, err)
	}
	return f.Close()
}
