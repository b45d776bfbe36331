package basehdl

// Package basehdl - base CRUD handlers.
// Package này cung cấp các chức năng CRUD cơ bản và các tiện ích để xử lý request/response.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "you_education/internal/api/base/service"
	"you_education/internal/common"
	"you_education/internal/global"
	"you_education/internal/utility"
)

// BaseHandler là struct cơ sở cho tất cả các handler CRUD.
// Type Parameters:
//   - T: Kiểu dữ liệu của model
//   - CreateInput: Kiểu dữ liệu DTO cho thao tác tạo mới
//   - UpdateInput: Kiểu dữ liệu DTO cho thao tác cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService basesvc.BaseServiceMongo[T]
}

// NewBaseHandler tạo mới một BaseHandler với service tương ứng
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: service,
	}
}

// ParseRequestBody parse request body thành struct.
// Sử dụng json.Decoder với UseNumber để giữ nguyên độ chính xác của số
// (tránh convert int64 lớn thành float64).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, result interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return common.NewError(
			common.ErrCodeValidationFormat,
			"Request body không được để trống",
			common.StatusBadRequest,
			nil,
		)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(result); err != nil {
		return err
	}

	return nil
}

// ValidateInput validate struct input theo các struct tag `validate`.
// Trả về common.Error với danh sách field lỗi trong Details.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}

	err := global.Validate.Struct(input)
	if err == nil {
		return nil
	}

	// Thu thập danh sách field lỗi để client biết cần sửa gì
	var validationErrors validator.ValidationErrors
	details := make(map[string]interface{})
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			details[fieldErr.Field()] = fmt.Sprintf("Không thỏa điều kiện '%s'", fieldErr.Tag())
		}
	}

	return common.NewError(
		common.ErrCodeValidationInput,
		"Dữ liệu đầu vào không hợp lệ",
		common.StatusBadRequest,
		details,
	)
}

// ProcessFilter parse và chuẩn hóa filter từ query string.
// Filter được truyền dưới dạng JSON, ví dụ: {"chapterId": "64f1..."}
// Các giá trị được normalize: json.Number → int64/float64, chuỗi hex 24 ký tự
// của các key dạng *Id/_id → primitive.ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	filterStr := c.Query("filter", "{}")

	var filter map[string]interface{}
	decoder := json.NewDecoder(strings.NewReader(filterStr))
	decoder.UseNumber()
	if err := decoder.Decode(&filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter phải là một JSON object hợp lệ. Giá trị nhận được: %s", filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	// Chặn các operator nguy hiểm
	if err := validateFilterSafety(filter); err != nil {
		return nil, err
	}

	return normalizeFilter(filter), nil
}

// validateFilterSafety chặn operator $where (cho phép chạy Javascript trên server MongoDB)
func validateFilterSafety(filter map[string]interface{}) error {
	for key, value := range filter {
		if key == "$where" {
			return common.NewError(
				common.ErrCodeValidationInput,
				"Filter chứa operator không được phép: $where",
				common.StatusBadRequest,
				nil,
			)
		}
		if nested, ok := value.(map[string]interface{}); ok {
			if err := validateFilterSafety(nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeFilter chuẩn hóa các giá trị trong filter:
// - json.Number → int64 (hoặc float64 nếu có phần thập phân)
// - Chuỗi hex 24 ký tự của các key dạng ID → primitive.ObjectID
// - Đệ quy vào map và slice lồng nhau
func normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(filter))
	for key, value := range filter {
		result[key] = normalizeFilterValue(key, value)
	}
	return result
}

func normalizeFilterValue(key string, value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if intVal, err := v.Int64(); err == nil {
			return intVal
		}
		if floatVal, err := v.Float64(); err == nil {
			return floatVal
		}
		return v.String()
	case string:
		if isObjectIDKey(key) && primitive.IsValidObjectID(v) {
			return utility.String2ObjectID(v)
		}
		return v
	case map[string]interface{}:
		nested := make(map[string]interface{}, len(v))
		for nestedKey, nestedValue := range v {
			// Các operator ($in, $eq, ...) giữ ngữ cảnh key của field cha
			contextKey := nestedKey
			if strings.HasPrefix(nestedKey, "$") {
				contextKey = key
			}
			nested[nestedKey] = normalizeFilterValue(contextKey, nestedValue)
		}
		return nested
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = normalizeFilterValue(key, item)
		}
		return items
	default:
		return value
	}
}

// isObjectIDKey kiểm tra key có phải là field chứa ObjectID không (_id, *Id, *ID)
func isObjectIDKey(key string) bool {
	return key == "_id" || strings.HasSuffix(key, "Id") || strings.HasSuffix(key, "ID")
}

// mongoOptionsInput là cấu trúc JSON của query param `options`
type mongoOptionsInput struct {
	Projection map[string]interface{} `json:"projection"`
	Sort       map[string]interface{} `json:"sort"`
	Limit      *int64                 `json:"limit"`
	Skip       *int64                 `json:"skip"`
}

// processMongoOptions parse query param `options` thành options MongoDB.
// isFindOne = true trả về *options.FindOneOptions, ngược lại *options.FindOptions.
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	optionsStr := c.Query("options", "{}")

	var input mongoOptionsInput
	if err := json.Unmarshal([]byte(optionsStr), &input); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options phải là một JSON object hợp lệ. Giá trị nhận được: %s", optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	// Sort cần giữ thứ tự ổn định, convert map sang bson.D
	buildSort := func(sort map[string]interface{}) bson.D {
		sortDoc := bson.D{}
		for field, order := range sort {
			sortDoc = append(sortDoc, bson.E{Key: field, Value: order})
		}
		return sortDoc
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if input.Projection != nil {
			opts.SetProjection(input.Projection)
		}
		if input.Sort != nil {
			opts.SetSort(buildSort(input.Sort))
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if input.Projection != nil {
		opts.SetProjection(input.Projection)
	}
	if input.Sort != nil {
		opts.SetSort(buildSort(input.Sort))
	}
	if input.Limit != nil {
		opts.SetLimit(*input.Limit)
	}
	if input.Skip != nil {
		opts.SetSkip(*input.Skip)
	}
	return opts, nil
}

// TransformCreateInputToModel chuyển đổi DTO CreateInput sang Model.
// Sử dụng struct tag `transform:"str2objectid"` để convert string → primitive.ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	model := new(T)
	if err := transformStruct(reflect.ValueOf(input).Elem(), reflect.ValueOf(model).Elem()); err != nil {
		return nil, err
	}
	return model, nil
}

// TransformUpdateInputToModel chuyển đổi DTO UpdateInput sang Model (hỗ trợ nested struct)
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	model := new(T)
	if err := transformStruct(reflect.ValueOf(input).Elem(), reflect.ValueOf(model).Elem()); err != nil {
		return nil, err
	}
	return model, nil
}

var objectIDType = reflect.TypeOf(primitive.ObjectID{})

// transformStruct copy các field trùng tên từ input sang model,
// áp dụng struct tag `transform` trên DTO:
//   - str_objectid: string → primitive.ObjectID ([]string → []primitive.ObjectID)
//   - suffix ",optional": chuỗi rỗng được bỏ qua (giữ zero value ở model)
//
// Field trong DTO không có ở model sẽ bị bỏ qua. Nested struct được xử lý đệ quy.
func transformStruct(inputVal, modelVal reflect.Value) error {
	inputType := inputVal.Type()

	for i := 0; i < inputType.NumField(); i++ {
		inputField := inputType.Field(i)
		if !inputField.IsExported() {
			continue
		}

		modelField := modelVal.FieldByName(inputField.Name)
		if !modelField.IsValid() || !modelField.CanSet() {
			continue
		}

		srcValue := inputVal.Field(i)
		tagParts := strings.Split(inputField.Tag.Get("transform"), ",")
		transformTag := tagParts[0]
		optional := len(tagParts) > 1 && tagParts[1] == "optional"

		switch {
		case transformTag == "str_objectid" && srcValue.Kind() == reflect.String:
			str := srcValue.String()
			if str == "" {
				if optional {
					continue // Field optional, giữ zero value
				}
				return fmt.Errorf("field %s: thiếu giá trị ObjectID", inputField.Name)
			}
			if !primitive.IsValidObjectID(str) {
				return fmt.Errorf("field %s: giá trị '%s' không phải ObjectID hợp lệ", inputField.Name, str)
			}
			if modelField.Type() != objectIDType {
				return fmt.Errorf("field %s: model không phải kiểu ObjectID", inputField.Name)
			}
			modelField.Set(reflect.ValueOf(utility.String2ObjectID(str)))

		case transformTag == "str_objectid" && srcValue.Kind() == reflect.Slice && srcValue.Type().Elem().Kind() == reflect.String:
			ids := make([]primitive.ObjectID, 0, srcValue.Len())
			for j := 0; j < srcValue.Len(); j++ {
				str := srcValue.Index(j).String()
				if !primitive.IsValidObjectID(str) {
					return fmt.Errorf("field %s[%d]: giá trị '%s' không phải ObjectID hợp lệ", inputField.Name, j, str)
				}
				ids = append(ids, utility.String2ObjectID(str))
			}
			modelField.Set(reflect.ValueOf(ids))

		case srcValue.Type() == modelField.Type():
			modelField.Set(srcValue)

		case srcValue.Kind() == reflect.Struct && modelField.Kind() == reflect.Struct:
			if err := transformStruct(srcValue, modelField); err != nil {
				return err
			}

		case srcValue.Kind() == reflect.Ptr && !srcValue.IsNil() && modelField.Kind() == reflect.Struct && srcValue.Elem().Kind() == reflect.Struct:
			if err := transformStruct(srcValue.Elem(), modelField); err != nil {
				return err
			}

		case srcValue.Kind() == reflect.Slice && modelField.Kind() == reflect.Slice &&
			srcValue.Type().Elem().Kind() == reflect.Struct && modelField.Type().Elem().Kind() == reflect.Struct:
			dst := reflect.MakeSlice(modelField.Type(), srcValue.Len(), srcValue.Len())
			for j := 0; j < srcValue.Len(); j++ {
				if err := transformStruct(srcValue.Index(j), dst.Index(j)); err != nil {
					return err
				}
			}
			modelField.Set(dst)

		case srcValue.Type().ConvertibleTo(modelField.Type()):
			modelField.Set(srcValue.Convert(modelField.Type()))

		default:
			return fmt.Errorf("field %s: không thể chuyển đổi %s sang %s", inputField.Name, srcValue.Type(), modelField.Type())
		}
	}

	return nil
}
