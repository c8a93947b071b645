package fallback

// solanaMonthly is the hand-curated month-start SOL/USD table.
var solanaMonthly = map[string]float64{
	"2020-03-01": 0.95,
	"2020-04-01": 0.78,
	"2020-05-01": 0.55,
	"2020-06-01": 0.83,
	"2020-07-01": 0.77,
	"2020-08-01": 1.75,
	"2020-09-01": 3.20,
	"2020-10-01": 2.70,
	"2020-11-01": 1.40,
	"2020-12-01": 1.55,

	"2021-01-01": 1.80,
	"2021-02-01": 4.50,
	"2021-03-01": 13.50,
	"2021-04-01": 19.00,
	"2021-05-01": 43.00,
	"2021-06-01": 28.00,
	"2021-07-01": 36.00,
	"2021-08-01": 37.00,
	"2021-09-01": 108.00,
	"2021-10-01": 142.00,
	"2021-11-01": 199.00,
	"2021-12-01": 205.00,

	"2022-01-01": 172.00,
	"2022-02-01": 92.00,
	"2022-03-01": 98.00,
	"2022-04-01": 133.00,
	"2022-05-01": 88.00,
	"2022-06-01": 46.00,
	"2022-07-01": 32.00,
	"2022-08-01": 43.00,
	"2022-09-01": 31.50,
	"2022-10-01": 32.80,
	"2022-11-01": 31.00,
	"2022-12-01": 13.30,

	"2023-01-01": 9.96,
	"2023-02-01": 23.80,
	"2023-03-01": 22.50,
	"2023-04-01": 20.50,
	"2023-05-01": 21.20,
	"2023-06-01": 20.20,
	"2023-07-01": 19.20,
	"2023-08-01": 24.50,
	"2023-09-01": 19.50,
	"2023-10-01": 21.80,
	"2023-11-01": 39.50,
	"2023-12-01": 59.00,

	"2024-01-01": 102.00,
	"2024-02-01": 97.00,
	"2024-03-01": 128.00,
	"2024-04-01": 188.00,
	"2024-05-01": 135.00,
	"2024-06-01": 165.00,
	"2024-07-01": 142.00,
	"2024-08-01": 138.00,
	"2024-09-01": 145.00,
	"2024-10-01": 132.00,
	"2024-11-01": 148.00,
	"2024-12-01": 133.00,

	"2025-01-01": 132.00,
	"2025-02-01": 101.00,
	"2025-03-01": 122.00,
	"2025-04-01": 175.00,
	"2025-05-01": 165.00,
	"2025-06-01": 170.00,
}
