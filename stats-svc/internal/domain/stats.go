package domain

type DishPopularity struct {
	DishID   string `json:"dish_id"`
	DishName string `json:"dish_name"`
	Quantity int    `json:"quantity"`
}

type DailyStats struct {
	Date      string           `json:"date"`
	Orders    int              `json:"orders"`
	ItemsSold int              `json:"items_sold"`
	Revenue   float64          `json:"revenue"`
	TopDishes []DishPopularity `json:"top_dishes"`
}
