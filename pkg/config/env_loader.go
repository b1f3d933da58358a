/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/pnoderadar/pkg/logger"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")
)

var durationType = reflect.TypeOf(time.Duration(0))

// EnvConfigLoader loads configuration from environment variables.
// Nested struct fields are joined with underscores, so with the prefix
// PNODERADAR_ the field Postgres.Host maps to PNODERADAR_POSTGRES_HOST.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader by reading from environment variables. A complete
// JSON document in <prefix>CONFIG_JSON takes precedence over individual variables.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	if jsonConfig := os.Getenv(e.prefix + "CONFIG_JSON"); jsonConfig != "" {
		if err := json.Unmarshal([]byte(jsonConfig), dst); err != nil {
			return fmt.Errorf("failed to unmarshal %sCONFIG_JSON: %w", e.prefix, err)
		}

		e.debug("Loaded configuration from CONFIG_JSON environment variable")

		return nil
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	if err := e.loadStruct(v, e.prefix); err != nil {
		return err
	}

	e.debug("Loaded configuration from environment variables")

	return nil
}

func (e *EnvConfigLoader) debug(msg string) {
	if e.logger != nil {
		e.logger.Debug().Str("prefix", e.prefix).Msg(msg)
	}
}

// loadStruct walks the json-tagged fields of v. Values that fail to parse are
// returned as errors instead of being silently skipped.
func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}

		envName := prefix + strings.ToUpper(strings.ReplaceAll(name, ".", "_"))

		if err := e.setField(field, envName); err != nil {
			return err
		}
	}

	return nil
}

func (e *EnvConfigLoader) setField(field reflect.Value, envName string) error {
	switch {
	case field.Kind() == reflect.Struct:
		return e.loadStruct(field, envName+"_")
	case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
		// only allocate optional sections that have at least one variable set
		if field.IsNil() && !hasEnvPrefix(envName+"_") {
			return nil
		}

		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}

		return e.loadStruct(field.Elem(), envName+"_")
	}

	value, ok := os.LookupEnv(envName)
	if !ok || value == "" {
		return nil
	}

	if err := setScalar(field, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", envName, err)
	}

	if e.logger != nil {
		e.logger.Debug().Str("env", envName).Msg("Loaded value from environment variable")
	}

	return nil
}

func hasEnvPrefix(prefix string) bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}

	return false
}

// setScalar parses value into field based on its kind. Any int64 type whose
// underlying kind matches time.Duration accepts Go duration strings.
func setScalar(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}

		field.SetBool(b)
	case reflect.Int64:
		if field.Type().ConvertibleTo(durationType) && !isPlainInt(value) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}

			field.SetInt(int64(d))

			return nil
		}

		fallthrough
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}

		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}

		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}

		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			slice := reflect.MakeSlice(field.Type(), 0, len(parts))

			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					slice = reflect.Append(slice, reflect.ValueOf(p).Convert(field.Type().Elem()))
				}
			}

			field.Set(slice)

			return nil
		}

		return json.Unmarshal([]byte(value), field.Addr().Interface())
	case reflect.Ptr:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}

		return setScalar(field.Elem(), value)
	default:
		return json.Unmarshal([]byte(value), field.Addr().Interface())
	}

	return nil
}

func isPlainInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)

	return err == nil
}
