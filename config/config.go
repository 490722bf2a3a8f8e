package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultRepeat   = 10
	defaultNumber   = 200_000
	defaultLength   = 100_000
	defaultLogLevel = "info"
)

// BenchProperties bench 运行参数
type BenchProperties struct {
	Cases    []string `cfg:"cases" yaml:"cases"`
	Repeat   int      `cfg:"repeat" yaml:"repeat"`
	Number   int      `cfg:"number" yaml:"number"`
	Length   int      `cfg:"length" yaml:"length"`
	LogLevel string   `cfg:"loglevel" yaml:"loglevel"`
	LogDir   string   `cfg:"logdir" yaml:"logdir"`
	FileLog  bool     `cfg:"filelog" yaml:"filelog"`

	// config file path
	CfPath string `cfg:"cf,omitempty" yaml:"-"`
}

var Properties = Default()

// Default 不读取配置文件时使用的参数
func Default() *BenchProperties {
	p := &BenchProperties{}
	p.applyDefaults()
	return p
}

func parse(src io.Reader) (*BenchProperties, error) {
	config := &BenchProperties{}

	// read config file
	rawMap := make(map[string]string)
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		pivot := strings.IndexAny(line, " ")
		if pivot > 0 && pivot < len(line)-1 { // separator found
			key := line[0:pivot]
			value := strings.Trim(line[pivot+1:], " ")
			rawMap[strings.ToLower(key)] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	// parse format
	t := reflect.TypeOf(config)
	v := reflect.ValueOf(config)
	n := t.Elem().NumField()
	for i := 0; i < n; i++ {
		field := t.Elem().Field(i)
		fieldVal := v.Elem().Field(i)
		key, ok := field.Tag.Lookup("cfg")
		if !ok || strings.TrimLeft(key, " ") == "" {
			key = field.Name
		}
		key = strings.Split(key, ",")[0]
		value, ok := rawMap[strings.ToLower(key)]
		if !ok {
			continue
		}
		// fill config
		switch field.Type.Kind() {
		case reflect.String:
			fieldVal.SetString(value)
		case reflect.Int:
			intValue, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "config %s", key)
			}
			fieldVal.SetInt(intValue)
		case reflect.Bool:
			fieldVal.SetBool("yes" == value)
		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String {
				slice := strings.Split(value, ",")
				for j := range slice {
					slice[j] = strings.TrimSpace(slice[j])
				}
				fieldVal.Set(reflect.ValueOf(slice))
			}
		}
	}
	return config, nil
}

func parseYaml(src io.Reader) (*BenchProperties, error) {
	config := &BenchProperties{}
	if err := yaml.NewDecoder(src).Decode(config); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode yaml config")
	}
	return config, nil
}

func (p *BenchProperties) applyDefaults() {
	if p.Repeat <= 0 {
		p.Repeat = defaultRepeat
	}
	if p.Number <= 0 {
		p.Number = defaultNumber
	}
	if p.Length <= 0 {
		p.Length = defaultLength
	}
	if p.LogLevel == "" {
		p.LogLevel = defaultLogLevel
	}
	if p.LogDir == "" {
		p.LogDir = "."
	}
}

// Load 按扩展名选择格式, .yaml/.yml 使用 yaml, 其它按 "key value" 格式解析
func Load(filename string) (*BenchProperties, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer func() {
		_ = file.Close()
	}()

	var props *BenchProperties
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		props, err = parseYaml(file)
	default:
		props, err = parse(file)
	}
	if err != nil {
		return nil, err
	}
	props.applyDefaults()
	if abs, err := filepath.Abs(filename); err == nil {
		props.CfPath = abs
	}
	return props, nil
}

// SetUpConfig 加载配置文件并替换全局的 Properties
func SetUpConfig(filename string) error {
	props, err := Load(filename)
	if err != nil {
		return err
	}
	Properties = props
	return nil
}
