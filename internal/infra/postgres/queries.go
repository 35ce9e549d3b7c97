package postgres

// Kunden

const ListCustomersSQL = `
SELECT
    k.kunden_id,
    COALESCE(k.firmenname, '')        AS firmenname,
    COALESCE(k.strasse, '')           AS strasse,
    COALESCE(k.hausnummer::text, '')  AS hausnummer,
    COALESCE(k.ort, '')               AS ort,
    COALESCE(k.plz::text, '')         AS plz,
    COALESCE(k.telefonnummer, '')     AS telefonnummer,
    COALESCE(k.email, '')             AS email,
    COUNT(DISTINCT a.ansprechpartner_id) AS ansprechpartner_count,
    COUNT(DISTINCT o.onboarding_id)      AS onboarding_count
FROM kunde k
LEFT JOIN ansprechpartner a ON k.kunden_id = a.kunde_id
LEFT JOIN onboarding o      ON k.kunden_id = o.kunde_id
GROUP BY k.kunden_id
ORDER BY k.kunden_id DESC
`

const CustomerExistsSQL = `SELECT EXISTS (SELECT 1 FROM kunde WHERE email = $1 OR firmenname = $2)`

const InsertCustomerSQL = `
INSERT INTO kunde (firmenname, strasse, hausnummer, ort, plz, telefonnummer, email)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING
    kunden_id,
    COALESCE(firmenname, ''),
    COALESCE(strasse, ''),
    COALESCE(hausnummer::text, ''),
    COALESCE(ort, ''),
    COALESCE(plz::text, ''),
    COALESCE(telefonnummer, ''),
    COALESCE(email, '')
`

const InsertContactPersonSQL = `
INSERT INTO ansprechpartner (name, vorname, telefonnummer, email, position, kunde_id)
VALUES ($1, $2, $3, $4, $5, $6)
`

// Kalkulationen

const CountCustomersSQL = `SELECT COUNT(*) FROM kunde`

const CountOnboardingsByStatusSQL = `SELECT COUNT(*) FROM onboarding WHERE status = ANY($1)`

const SumHoursCurrentMonthSQL = `
SELECT COALESCE(SUM(gesamtzeit), 0)::float8 AS total_hours
FROM kalkulation
WHERE EXTRACT(MONTH FROM datum) = EXTRACT(MONTH FROM CURRENT_DATE)
  AND EXTRACT(YEAR  FROM datum) = EXTRACT(YEAR  FROM CURRENT_DATE)
`

const SumRevenueCurrentMonthSQL = `
SELECT COALESCE(SUM(gesamtpreis), 0)::float8 AS total_revenue
FROM kalkulation
WHERE EXTRACT(MONTH FROM datum) = EXTRACT(MONTH FROM CURRENT_DATE)
  AND EXTRACT(YEAR  FROM datum) = EXTRACT(YEAR  FROM CURRENT_DATE)
  AND status = $1
`

const ListRecentCalculationsSQL = `
SELECT
    k.kalkulations_id,
    k.datum,
    COALESCE(k.status, '')            AS status,
    COALESCE(k.stundensatz, 0)::float8 AS stundensatz,
    COALESCE(k.gesamtzeit, 0)::float8  AS gesamtzeit,
    COALESCE(k.gesamtpreis, 0)::float8 AS gesamtpreis,
    COALESCE(ku.firmenname, '')       AS kunde_name,
    m.name                            AS mitarbeiter_name,
    m.vorname                         AS mitarbeiter_vorname
FROM kalkulation k
JOIN kunde ku           ON k.kunde_id = ku.kunden_id
LEFT JOIN mitarbeiter m ON k.mitarbeiter_id = m.mitarbeiter_id
ORDER BY k.datum DESC, k.kalkulations_id DESC
LIMIT $1
`

const InsertCalculationSQL = `
INSERT INTO kalkulation (datum, gesamtpreis, gesamtzeit, stundensatz, status, kunde_id, mitarbeiter_id)
VALUES (CURRENT_DATE, $1, $2, $3, $4, $5, $6)
RETURNING kalkulations_id, datum, status,
          stundensatz::float8 AS stundensatz,
          gesamtzeit::float8  AS gesamtzeit,
          gesamtpreis::float8 AS gesamtpreis
`

const InsertServiceLineSQL = `
INSERT INTO dienstleistung (beschreibung, dauer_pro_einheit, anzahl, gesamtdauer, info, kalkulation_id, stundensatz)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Onboarding

const InsertOnboardingSQL = `
INSERT INTO onboarding (datum, status, mitarbeiter_id, kunde_id, infrastructure_data)
VALUES (CURRENT_DATE, $1, $2, $3, $4::jsonb)
RETURNING onboarding_id
`

const GetOnboardingSQL = `
SELECT onboarding_id, datum, COALESCE(status, ''), mitarbeiter_id, kunde_id, infrastructure_data::text
FROM onboarding
WHERE onboarding_id = $1
`

// Mitarbeiter

const GetEmployeeByEmailSQL = `
SELECT mitarbeiter_id,
       COALESCE(name, ''), COALESCE(vorname, ''), COALESCE(email, ''),
       COALESCE(telefonnummer, ''), COALESCE(rolle, ''), COALESCE(passwort, '')
FROM mitarbeiter
WHERE email = $1
`

const EmployeeExistsSQL = `SELECT EXISTS (SELECT 1 FROM mitarbeiter WHERE email = $1)`

const InsertEmployeeSQL = `
INSERT INTO mitarbeiter (name, vorname, email, passwort, telefonnummer, rolle)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING mitarbeiter_id, name, vorname, email, telefonnummer, rolle
`
