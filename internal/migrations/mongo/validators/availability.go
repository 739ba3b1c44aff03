package validators

import "go.mongodb.org/mongo-driver/bson"

var timePattern = "^([01][0-9]|2[0-3]):[0-5][0-9]$"

var AvailabilityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"availability",
			"availability_exceptions",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"availability": bson.M{
				"bsonType": "array",
				"minItems": 7,
				"maxItems": 7,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"day", "active", "times"},
					"properties": bson.M{
						"day": bson.M{
							"enum": []string{
								"monday", "tuesday", "wednesday", "thursday",
								"friday", "saturday", "sunday",
							},
						},
						"active": bson.M{
							"bsonType": "bool",
						},
						"times": bson.M{
							"bsonType": "array",
							"items": bson.M{
								"bsonType": "object",
								"required": []string{"start_time", "end_time", "rate"},
								"properties": bson.M{
									"start_time": bson.M{
										"bsonType": "string",
										"pattern":  timePattern,
									},
									"end_time": bson.M{
										"bsonType": "string",
										"pattern":  timePattern,
									},
									"rate": bson.M{
										"bsonType": []string{"double", "int", "long", "decimal"},
										"minimum":  0,
									},
								},
							},
						},
					},
				},
			},

			"availability_exceptions": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"exception_date", "start_time", "end_time"},
					"properties": bson.M{
						"exception_date": bson.M{
							"bsonType": "string",
							"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
						},
						"start_time": bson.M{
							"bsonType": "string",
							"pattern":  timePattern,
						},
						"end_time": bson.M{
							"bsonType": "string",
							"pattern":  timePattern,
						},
					},
				},
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
