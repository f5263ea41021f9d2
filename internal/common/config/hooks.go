package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		StringOrListHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)),
}

// StringOrListHookFunc lets a string field be written as a list of strings, which are joined with a single space.
// This allows long argument strings to be split over several lines in a definitions file.
func StringOrListHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// check that src and target types are valid
		if t.Kind() != reflect.String || (f.Kind() != reflect.Slice && f.Kind() != reflect.Array) {
			return data, nil
		}
		v := reflect.ValueOf(data)
		parts := make([]string, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts[i] = fmt.Sprintf("%v", v.Index(i).Interface())
		}
		return strings.Join(parts, " "), nil
	}
}
