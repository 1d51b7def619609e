package internal

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
)

func Test_format(t *testing.T) {
	type args struct {
		text   string
		params map[string]string
	}

	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "empty test",
			args: args{"", map[string]string{}},
			want: "",
		},

		{
			name: "name test",
			args: args{"hello this is me, ${name}", map[string]string{"name": "Shravan"}},
			want: "hello this is me, Shravan",
		},

		{
			name: "color markup test",
			args: args{"${yellow}Total time: ${green}{{ .Total }}${reset}", map[string]string{"yellow": "[yellow]", "green": "[green]", "reset": "[reset]"}},
			want: "[yellow]Total time: [green]{{ .Total }}[reset]",
		},

		{
			name: "unknown keys are kept",
			args: args{"${a} and ${b}", map[string]string{"a": "1"}},
			want: "1 and ${b}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format(tt.args.text, tt.args.params); got != tt.want {
				t.Errorf("format() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_writeToFile(t *testing.T) {
	dir := t.TempDir()
	type args struct {
		text     string
		filename string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "write to file",
			args: args{
				text:     "hello this is me, name",
				filename: filepath.Join(dir, "test.txt"),
			},
			wantErr: false,
		},
		{
			name: "write to file error",
			args: args{
				text:     "this test must fail",
				filename: filepath.Join(dir, "missing", "test.txt"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeToFile(tt.args.text, tt.args.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("writeToFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			data, err := os.ReadFile(tt.args.filename)
			if err != nil || string(data) != tt.args.text {
				t.Errorf("writeToFile() wrote %q (%v), want %q", data, err, tt.args.text)
			}
		})
	}
}

func TestMapFunc(t *testing.T) {
	type args[T, S any] struct {
		function func(T) S
		slice    []T
	}
	tests := []struct {
		name string
		args args[int, string]
		want []string
	}{
		{name: "pass1", args: args[int, string]{func(i int) string { return strconv.Itoa(i) }, []int{}}, want: []string{}},
		{name: "pass2", args: args[int, string]{func(i int) string { return strconv.Itoa(i) }, []int{1, 2, 12, 15}}, want: []string{"1", "2", "12", "15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapFunc(tt.args.function, tt.args.slice); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapFunc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterFunc(t *testing.T) {
	even := func(i int) bool { return i%2 == 0 }
	tests := []struct {
		name  string
		slice []int
		want  []int
	}{
		{"empty", nil, nil},
		{"none match", []int{1, 3, 5}, nil},
		{"some match", []int{1, 2, 3, 4}, []int{2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterFunc(even, tt.slice); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterFunc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_roundFloat(t *testing.T) {
	tests := []struct {
		num    float64
		digits int
		want   float64
	}{
		{1.23456, 2, 1.23},
		{1.235, 1, 1.2},
		{-2.5, 0, -3},
		{12.3456, 3, 12.346},
	}
	for _, tt := range tests {
		if got := roundFloat(tt.num, tt.digits); got != tt.want {
			t.Errorf("roundFloat(%v, %v) = %v, want %v", tt.num, tt.digits, got, tt.want)
		}
	}
}
