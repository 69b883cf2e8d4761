package processors

import (
	"github.com/username/fincast/backend/src/models"
)

func tx(date string, amount float64, category string) models.TransactionRecord {
	return models.TransactionRecord{Date: models.MustDate(date), Amount: amount, Category: category}
}

func hist(date string, actual, predicted float64) models.ForecastPoint {
	return models.ForecastPoint{Date: models.MustDate(date), Predicted: predicted, Actual: &actual}
}

func future(date string, predicted float64) models.ForecastPoint {
	return models.ForecastPoint{Date: models.MustDate(date), Predicted: predicted}
}
