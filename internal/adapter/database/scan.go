package database

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// ScanRows reads every remaining row into a Row. Byte slices are copied into
// strings since drivers may reuse the underlying buffer.
func ScanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()

	if err != nil {
		return nil, err
	}

	result := []Row{}

	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))

		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))

		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}

			row[column] = values[i]
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// DecodeRow copies row into the struct dest points to. Columns are matched to
// fields by `db` tag, then by case-insensitive name, then by snake_case to
// CamelCase. Unmatched columns are ignored.
func DecodeRow(row Row, dest any) error {
	destValue := reflect.ValueOf(dest)

	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct")
	}

	destElem := destValue.Elem()
	destType := destElem.Type()

	for column, val := range row {
		field, ok := findStructField(destType, column)

		if !ok {
			continue
		}

		if err := setFieldValue(destElem.FieldByIndex(field.Index), val); err != nil {
			return fmt.Errorf("column %s: %w", column, err)
		}
	}

	return nil
}

func findStructField(structType reflect.Type, column string) (reflect.StructField, bool) {
	columnLower := strings.ToLower(column)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if tag := field.Tag.Get("db"); tag != "" && strings.ToLower(tag) == columnLower {
			return field, true
		}
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if strings.ToLower(field.Name) == columnLower {
			return field, true
		}
	}

	if field, found := structType.FieldByName(snakeToCamel(column)); found {
		return field, true
	}

	return reflect.StructField{}, false
}

func snakeToCamel(snake string) string {
	parts := strings.Split(snake, "_")

	for i := range parts {
		if len(parts[i]) > 0 {
			runes := []rune(strings.ToLower(parts[i]))
			runes[0] = unicode.ToUpper(runes[0])
			parts[i] = string(runes)
		}
	}

	return strings.Join(parts, "")
}

func setFieldValue(field reflect.Value, val any) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	if val == nil {
		return nil
	}

	valValue := reflect.ValueOf(val)

	if valValue.Type().AssignableTo(field.Type()) {
		field.Set(valValue)
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		switch v := val.(type) {
		case int64:
			field.SetString(strconv.FormatInt(v, 10))
		case int32:
			field.SetString(strconv.FormatInt(int64(v), 10))
		case int:
			field.SetString(strconv.Itoa(v))
		default:
			field.SetString(fmt.Sprint(v))
		}
	case reflect.Bool:
		switch v := val.(type) {
		case int64:
			field.SetBool(v != 0)
		case string:
			b, err := strconv.ParseBool(v)

			if err != nil {
				return err
			}

			field.SetBool(b)
		default:
			return fmt.Errorf("cannot convert %T to bool", val)
		}
	case reflect.Int, reflect.Int32, reflect.Int64:
		switch v := val.(type) {
		case int64:
			field.SetInt(v)
		case int32:
			field.SetInt(int64(v))
		case string:
			n, err := strconv.ParseInt(v, 10, 64)

			if err != nil {
				return err
			}

			field.SetInt(n)
		default:
			return fmt.Errorf("cannot convert %T to int", val)
		}
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}

	return nil
}
